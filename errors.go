/*
 * errors.go, part of goFerro.
 *
 * Copyright 2024 The goFerro developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ferro

// Error is the interface for errors that the packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error as it is passed up, without changing its type or wrapping it around
// something else. Each call returns the current decoration slice. If passed
// an empty string, it just returns the current value without adding to it.
// The decoration slice should contain the functions in the calling stack
// plus, for each function, any relevant information, in the format
// "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete Error used by the ferro package itself.
type CError struct {
	msg  string
	deco []string
}

// NewCError returns a CError with the given message, decorated with the
// name of the caller function.
func NewCError(msg string, caller string) *CError {
	return &CError{msg: msg, deco: []string{caller}}
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
