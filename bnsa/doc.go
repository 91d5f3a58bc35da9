// Package bnsa reads Battle Network sprite archives.
//
// An archive is a short header and an animation pointer table followed by
// tilesets, palettes, mini-animation groups and OAM data list groups, in that
// order. Nothing in the file says where one region stops and the next one
// starts: the reader infers the boundaries from the animation frames it has
// already decoded and from the shape of the bytes themselves, backtracking
// when a speculative read does not pan out.
//
// Once every region has been read, animation frames are linked to the records
// they draw with. Mini-animation and OAM groups resolve their own internal
// pointers while they are decoded.
//
// Only reading is supported.
package bnsa
