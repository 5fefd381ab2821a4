// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeNames(t *testing.T) {
	assert.Equal(t, "Escape", CodeEscape.String())
	assert.Equal(t, "A", CodeA.String())
	assert.Equal(t, "Z", CodeZ.String())
	assert.Equal(t, "7", Code7.String())
	assert.Equal(t, "F12", CodeF12.String())
	assert.Equal(t, "Codes(999)", Codes(999).String())
}

func TestCodeFromString(t *testing.T) {
	for _, c := range CodesValues()[1:] {
		got, err := CodeFromString(c.String())
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}
	c, err := CodeFromString("escape")
	assert.NoError(t, err)
	assert.Equal(t, CodeEscape, c)
	c, err = CodeFromString("CodeQ")
	assert.NoError(t, err)
	assert.Equal(t, CodeQ, c)
	_, err = CodeFromString("Hyper")
	assert.Error(t, err)
	_, err = CodeFromString("Unknown")
	assert.Error(t, err)
}
