// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key defines the physical key codes reported in key events.
package key

import (
	"fmt"
	"strings"
)

// Codes is the physical key code, independent of keyboard layout.
// Only the keys a rendering host is likely to bind are listed;
// everything else maps to [CodeUnknown].
type Codes int32

const (
	CodeUnknown Codes = iota

	CodeA
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	Code0
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9

	CodeEscape
	CodeReturnEnter
	CodeTab
	CodeSpacebar
	CodeBackspace
	CodeDelete

	CodeRightArrow
	CodeLeftArrow
	CodeDownArrow
	CodeUpArrow

	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	codesN
)

var codeNames = func() [codesN]string {
	var nm [codesN]string
	nm[CodeUnknown] = "Unknown"
	for c := CodeA; c <= CodeZ; c++ {
		nm[c] = string(rune('A' + (c - CodeA)))
	}
	for c := Code0; c <= Code9; c++ {
		nm[c] = string(rune('0' + (c - Code0)))
	}
	nm[CodeEscape] = "Escape"
	nm[CodeReturnEnter] = "ReturnEnter"
	nm[CodeTab] = "Tab"
	nm[CodeSpacebar] = "Spacebar"
	nm[CodeBackspace] = "Backspace"
	nm[CodeDelete] = "Delete"
	nm[CodeRightArrow] = "RightArrow"
	nm[CodeLeftArrow] = "LeftArrow"
	nm[CodeDownArrow] = "DownArrow"
	nm[CodeUpArrow] = "UpArrow"
	for c := CodeF1; c <= CodeF12; c++ {
		nm[c] = fmt.Sprintf("F%d", int(1+c-CodeF1))
	}
	return nm
}()

// String returns the name of the key code.
func (c Codes) String() string {
	if c < 0 || c >= codesN {
		return fmt.Sprintf("Codes(%d)", int32(c))
	}
	return codeNames[c]
}

// CodeFromString returns the key code with the given name,
// ignoring case. A "Code" prefix is accepted, so "CodeEscape",
// "Escape" and "escape" are all the same key.
func CodeFromString(s string) (Codes, error) {
	name := strings.TrimPrefix(strings.TrimSpace(s), "Code")
	for c := CodeA; c < codesN; c++ {
		if strings.EqualFold(codeNames[c], name) {
			return c, nil
		}
	}
	return CodeUnknown, fmt.Errorf("key: unknown key code %q", s)
}

// CodesValues returns all valid key codes.
func CodesValues() []Codes {
	vals := make([]Codes, codesN)
	for i := range vals {
		vals[i] = Codes(i)
	}
	return vals
}
