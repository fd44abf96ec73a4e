// Package mazestore persists maze layouts in the canonical binary encoding
// on disk, in redis or in MongoDB.
package mazestore

import "errors"

var ErrMazeNotFound = errors.New("maze not found")
