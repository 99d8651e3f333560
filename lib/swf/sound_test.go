// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSoundStreamHeadADPCM(t *testing.T) {
	writer := newTestWriter(t, Options{})
	writer.SoundStreamHead(
		SoundFormat{Rate: SampleRate44KHz, Type: SoundStereo},
		SoundADPCM,
		SoundFormat{Rate: SampleRate22KHz, Type: SoundMono},
	)
	want := []byte{0x84, 0x04, 0x0F, 0x1A, 0x00, 0x00}
	if diff := cmp.Diff(want, writer.buffer.Bytes()); diff != "" {
		t.Errorf("head mismatch (-want +got):\n%s", diff)
	}

	if err := writer.SoundStreamEnd(576, 99); err != nil {
		t.Fatal(err)
	}
	// No latency field for ADPCM.
	want = []byte{0x84, 0x04, 0x0F, 0x1A, 0x40, 0x02}
	if diff := cmp.Diff(want, writer.buffer.Bytes()); diff != "" {
		t.Errorf("fixed up head mismatch (-want +got):\n%s", diff)
	}
}

func TestSoundStreamHeadMP3(t *testing.T) {
	writer := newTestWriter(t, Options{})
	format := SoundFormat{Rate: SampleRate11KHz, Type: SoundMono}
	writer.SoundStreamHead(format, SoundMP3, format)
	if err := writer.MP3StreamBlock(1152, 0, []byte{0xFF, 0xFB, 0x90}); err != nil {
		t.Fatal(err)
	}
	cursor := writer.buffer.Cursor()
	if err := writer.SoundStreamEnd(1152, -10); err != nil {
		t.Fatal(err)
	}
	if writer.buffer.Cursor() != cursor {
		t.Errorf("SoundStreamEnd moved the cursor from %d to %d", cursor, writer.buffer.Cursor())
	}

	want := []byte{
		0x86, 0x04, 0x06, 0x26, 0x80, 0x04, 0xF6, 0xFF,
		0xFF, 0x04, 0x07, 0x00, 0x00, 0x00, // always extended
		0x80, 0x04, 0x00, 0x00, 0xFF, 0xFB, 0x90,
	}
	if diff := cmp.Diff(want, writer.buffer.Bytes()); diff != "" {
		t.Errorf("mp3 stream mismatch (-want +got):\n%s", diff)
	}
}

func TestSoundFixupSurvivesSpriteShift(t *testing.T) {
	writer := newTestWriter(t, Options{})
	writer.Header()
	if _, err := writer.DefineSpriteBegin(1); err != nil {
		t.Fatal(err)
	}
	format := SoundFormat{Rate: SampleRate44KHz, Type: SoundStereo}
	writer.SoundStreamHead(format, SoundMP3, format)
	if err := writer.ShowFrame(); err != nil {
		t.Fatal(err)
	}
	// Closing the sprite rewrites its header as two bytes and moves the
	// sound head four bytes left.
	writer.DefineSpriteEnd()
	if err := writer.SoundStreamEnd(1152, -10); err != nil {
		t.Fatal(err)
	}
	writer.End()
	data, err := writer.Finish()
	if err != nil {
		t.Fatal(err)
	}

	// Signature, zero rect, rate and count.
	body := data[signatureLength+2+4:]
	sprite, _ := parseTag(t, body)
	if sprite.code != TagDefineSprite || sprite.headerLength != compactHeaderLength {
		t.Fatalf("first tag = %s with %d-byte header, want compact DefineSprite", sprite.code, sprite.headerLength)
	}
	head, _ := parseTag(t, sprite.payload[4:])
	if head.code != TagSoundStreamHead {
		t.Fatalf("first sprite tag = %s, want SoundStreamHead", head.code)
	}
	if diff := cmp.Diff([]byte{0x80, 0x04, 0xF6, 0xFF}, head.payload[2:]); diff != "" {
		t.Errorf("fixed up fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSoundStreamEndWithoutHead(t *testing.T) {
	writer := newTestWriter(t, Options{})
	if err := writer.SoundStreamEnd(1, 0); !errors.Is(err, ErrNoSoundStream) {
		t.Errorf("SoundStreamEnd without head = %v, want ErrNoSoundStream", err)
	}

	format := SoundFormat{Rate: SampleRate5_5KHz, Type: SoundMono}
	writer.SoundStreamHead(format, SoundADPCM, format)
	if err := writer.SoundStreamEnd(1, 0); err != nil {
		t.Fatal(err)
	}
	if err := writer.SoundStreamEnd(1, 0); !errors.Is(err, ErrNoSoundStream) {
		t.Errorf("second SoundStreamEnd = %v, want ErrNoSoundStream", err)
	}
}

func TestSoundStreamHeadInvalidCodesPanic(t *testing.T) {
	writer := newTestWriter(t, Options{})
	format := SoundFormat{Rate: SampleRate11KHz}
	expectViolation(t, "SoundStreamHead", func() { writer.SoundStreamHead(format, SoundCompression(3), format) })
	expectViolation(t, "SoundStreamHead", func() { writer.SoundStreamHead(SoundFormat{Rate: 4}, SoundMP3, format) })
	if writer.Len() != 0 {
		t.Errorf("rejected heads wrote %d bytes", writer.Len())
	}
}
