package anim

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

type TransformProperty struct {
	Id     EntityId
	Matrix mgl64.Mat4
}

type OpacityProperty struct {
	Id      EntityId
	Opacity float32
}

// ColorProperty carries a color packed as 0xRRGGBBAA.
type ColorProperty struct {
	Id    EntityId
	Color uint32
}

// Snapshot is an owned copy of the sampled values of one frame, split by kind.
type Snapshot struct {
	Transforms []TransformProperty
	Opacities  []OpacityProperty
	Colors     []ColorProperty
}

func (s Snapshot) Len() int {
	return len(s.Transforms) + len(s.Opacities) + len(s.Colors)
}

func (s Snapshot) IsEmpty() bool { return s.Len() == 0 }

// Sort orders every array by EntityId.
func (s *Snapshot) Sort() {
	slices.SortFunc(s.Transforms, func(a, b TransformProperty) int { return cmp.Compare(a.Id, b.Id) })
	slices.SortFunc(s.Opacities, func(a, b OpacityProperty) int { return cmp.Compare(a.Id, b.Id) })
	slices.SortFunc(s.Colors, func(a, b ColorProperty) int { return cmp.Compare(a.Id, b.Id) })
}

const (
	snapshotHeaderSize  = 12
	transformRecordSize = 8 + 16*8
	opacityRecordSize   = 8 + 4
	colorRecordSize     = 8 + 4
)

var errShortSnapshot = errors.New("anim: snapshot data too short")

// MarshalBinary encodes the snapshot as three little-endian uint32 counts followed by
// the transform, opacity and color records.
func (s Snapshot) MarshalBinary() (data []byte, err error) {
	size := snapshotHeaderSize +
		len(s.Transforms)*transformRecordSize +
		len(s.Opacities)*opacityRecordSize +
		len(s.Colors)*colorRecordSize
	data = make([]byte, 0, size)

	data = binary.LittleEndian.AppendUint32(data, uint32(len(s.Transforms)))
	data = binary.LittleEndian.AppendUint32(data, uint32(len(s.Opacities)))
	data = binary.LittleEndian.AppendUint32(data, uint32(len(s.Colors)))
	for _, t := range s.Transforms {
		data = binary.LittleEndian.AppendUint64(data, uint64(t.Id))
		for _, v := range t.Matrix {
			data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
		}
	}
	for _, o := range s.Opacities {
		data = binary.LittleEndian.AppendUint64(data, uint64(o.Id))
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(o.Opacity))
	}
	for _, c := range s.Colors {
		data = binary.LittleEndian.AppendUint64(data, uint64(c.Id))
		data = binary.LittleEndian.AppendUint32(data, c.Color)
	}
	return data, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary, replacing the contents of s.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) < snapshotHeaderSize {
		return errShortSnapshot
	}
	nt := int(binary.LittleEndian.Uint32(data[0:]))
	no := int(binary.LittleEndian.Uint32(data[4:]))
	nc := int(binary.LittleEndian.Uint32(data[8:]))
	data = data[snapshotHeaderSize:]

	want := nt*transformRecordSize + no*opacityRecordSize + nc*colorRecordSize
	if nt < 0 || no < 0 || nc < 0 || len(data) != want {
		return fmt.Errorf("%w: have %d bytes of records, want %d", errShortSnapshot, len(data), want)
	}

	*s = Snapshot{}
	if nt > 0 {
		s.Transforms = make([]TransformProperty, nt)
	}
	for i := range s.Transforms {
		t := &s.Transforms[i]
		t.Id = EntityId(binary.LittleEndian.Uint64(data))
		for j := range t.Matrix {
			t.Matrix[j] = math.Float64frombits(binary.LittleEndian.Uint64(data[8+j*8:]))
		}
		data = data[transformRecordSize:]
	}
	if no > 0 {
		s.Opacities = make([]OpacityProperty, no)
	}
	for i := range s.Opacities {
		s.Opacities[i] = OpacityProperty{
			Id:      EntityId(binary.LittleEndian.Uint64(data)),
			Opacity: math.Float32frombits(binary.LittleEndian.Uint32(data[8:])),
		}
		data = data[opacityRecordSize:]
	}
	if nc > 0 {
		s.Colors = make([]ColorProperty, nc)
	}
	for i := range s.Colors {
		s.Colors[i] = ColorProperty{
			Id:    EntityId(binary.LittleEndian.Uint64(data)),
			Color: binary.LittleEndian.Uint32(data[8:]),
		}
		data = data[colorRecordSize:]
	}
	return nil
}
