// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SamplingRate is the two-bit sound sampling rate code.
type SamplingRate uint8

const (
	SampleRate5_5KHz SamplingRate = 0
	SampleRate11KHz  SamplingRate = 1
	SampleRate22KHz  SamplingRate = 2
	SampleRate44KHz  SamplingRate = 3
)

// SoundType is the channel layout.
type SoundType uint8

const (
	SoundMono   SoundType = 0
	SoundStereo SoundType = 1
)

// SoundCompression is the four-bit stream compression code.
type SoundCompression uint8

const (
	SoundADPCM SoundCompression = 1
	SoundMP3   SoundCompression = 2
)

// SoundFormat describes one side (playback or stream) of a sound
// stream header.
type SoundFormat struct {
	Rate SamplingRate
	Type SoundType
}

// SoundStreamHead announces a streamed sound for the timeline it is
// written in. The average sample count per block (and, for MP3, the
// latency seek) is not known yet; it is written as zero and filled in
// by [Writer.SoundStreamEnd]. Starting a new stream head replaces any
// pending one.
func (w *Writer) SoundStreamHead(playback SoundFormat, compression SoundCompression, stream SoundFormat) {
	w.requireWritable("SoundStreamHead")
	if playback.Rate > SampleRate44KHz || stream.Rate > SampleRate44KHz {
		violation("SoundStreamHead", "sampling rate code out of range")
	}
	if playback.Type > SoundStereo || stream.Type > SoundStereo {
		violation("SoundStreamHead", "sound type code out of range")
	}
	if compression != SoundADPCM && compression != SoundMP3 {
		violation("SoundStreamHead", "unsupported sound compression %d", compression)
	}
	isMP3 := compression == SoundMP3
	size := 4
	if isMP3 {
		size = 6
	}

	w.OpenTag(TagSoundStreamHead, Known(size))
	w.bits.WriteBits(0, 4) // reserved
	w.bits.WriteBits(uint32(playback.Rate), 2)
	w.bits.WriteFlag(true) // 16-bit samples
	w.bits.WriteBits(uint32(playback.Type), 1)
	w.bits.WriteBits(uint32(compression), 4)
	w.bits.WriteBits(uint32(stream.Rate), 2)
	w.bits.WriteFlag(true) // 16-bit samples
	w.bits.WriteBits(uint32(stream.Type), 1)
	w.bits.Flush()

	if w.soundFixup != nil {
		w.buffer.Release(w.soundFixup)
	}
	w.soundFixup = w.buffer.Mark(w.buffer.Cursor())
	w.soundIsMP3 = isMP3
	w.WriteUint16(0)
	if isMP3 {
		w.WriteUint16(0)
	}
	w.CloseTag()
}

// MP3StreamBlock writes one block of MP3 frames for the current
// sound stream.
func (w *Writer) MP3StreamBlock(sampleCount uint16, seekSamples int16, data []byte) error {
	w.requireWritable("MP3StreamBlock")
	if int64(len(data))+4 > math.MaxUint32 {
		return fmt.Errorf("mp3 block of %d bytes: %w", len(data), ErrOutOfRange)
	}
	w.OpenTag(TagSoundStreamBlock, Known(len(data)+4))
	w.WriteUint16(sampleCount)
	w.WriteUint16(uint16(seekSamples))
	w.WriteBytes(data)
	w.CloseTag()
	return nil
}

// SoundStreamEnd fills in the fields left as placeholders by the most
// recent [Writer.SoundStreamHead]. latencySeek is written only for MP3
// streams. The cursor does not move.
func (w *Writer) SoundStreamEnd(sampleCount uint16, latencySeek int16) error {
	w.requireWritable("SoundStreamEnd")
	if w.soundFixup == nil || !w.soundFixup.Valid() {
		return ErrNoSoundStream
	}
	fields := binary.LittleEndian.AppendUint16(nil, sampleCount)
	if w.soundIsMP3 {
		fields = binary.LittleEndian.AppendUint16(fields, uint16(latencySeek))
	}
	w.buffer.WriteAt(fields, int64(w.soundFixup.Offset()))
	w.buffer.Release(w.soundFixup)
	w.soundFixup = nil
	w.soundIsMP3 = false
	return nil
}
