// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import "fmt"

// TagCode identifies the type of a tag. Codes are ten bits wide.
type TagCode uint16

// Tag codes for the records this package writes.
const (
	TagEnd                 TagCode = 0
	TagShowFrame           TagCode = 1
	TagDefineShape         TagCode = 2
	TagDefineBits          TagCode = 6
	TagSetBackgroundColor  TagCode = 9
	TagDoAction            TagCode = 12
	TagSoundStreamHead     TagCode = 18
	TagSoundStreamBlock    TagCode = 19
	TagDefineBitsLossless  TagCode = 20
	TagDefineBitsJPEG2     TagCode = 21
	TagPlaceObject2        TagCode = 26
	TagRemoveObject2       TagCode = 28
	TagDefineBitsJPEG3     TagCode = 35
	TagDefineBitsLossless2 TagCode = 36
	TagDefineSprite        TagCode = 39
	TagExportAssets        TagCode = 56
)

// maxTagCode is the largest code that fits the ten-bit field.
const maxTagCode TagCode = 1<<10 - 1

var tagNames = map[TagCode]string{
	TagEnd:                 "End",
	TagShowFrame:           "ShowFrame",
	TagDefineShape:         "DefineShape",
	TagDefineBits:          "DefineBits",
	TagSetBackgroundColor:  "SetBackgroundColor",
	TagDoAction:            "DoAction",
	TagSoundStreamHead:     "SoundStreamHead",
	TagSoundStreamBlock:    "SoundStreamBlock",
	TagDefineBitsLossless:  "DefineBitsLossless",
	TagDefineBitsJPEG2:     "DefineBitsJPEG2",
	TagPlaceObject2:        "PlaceObject2",
	TagRemoveObject2:       "RemoveObject2",
	TagDefineBitsJPEG3:     "DefineBitsJPEG3",
	TagDefineBitsLossless2: "DefineBitsLossless2",
	TagDefineSprite:        "DefineSprite",
	TagExportAssets:        "ExportAssets",
}

// String returns the tag name, or the numeric code for tags this
// package has no name for.
func (code TagCode) String() string {
	if name, ok := tagNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", uint16(code))
}

// AlwaysExtended reports whether the player requires the extended
// header for this tag regardless of payload length.
func (code TagCode) AlwaysExtended() bool {
	switch code {
	case TagDefineBits,
		TagDefineBitsJPEG2,
		TagDefineBitsJPEG3,
		TagDefineBitsLossless,
		TagDefineBitsLossless2,
		TagSoundStreamBlock:
		return true
	}
	return false
}
