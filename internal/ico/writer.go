package ico

import (
	"encoding/binary"
	"sort"
)

// Write packs already-encoded per-size PNG buffers into an ICO container.
// Sizes are written ascending; the 256 sentinel is stored as 0 in the
// width/height bytes. Payloads are copied verbatim, never re-encoded, so
// the output is the exact inverse of what Parse accepts.
func Write(imagesBySize map[int][]byte) ([]byte, error) {
	if len(imagesBySize) == 0 {
		return nil, formatErrorf("no images to write")
	}
	if len(imagesBySize) > 255 {
		return nil, formatErrorf("image count %d exceeds 255", len(imagesBySize))
	}

	sizes := make([]int, 0, len(imagesBySize))
	for size := range imagesBySize {
		if size <= 0 || size > 256 {
			return nil, formatErrorf("image size %d out of range 1..256", size)
		}
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)

	total := headerSize + len(sizes)*entrySize
	for _, size := range sizes {
		total += len(imagesBySize[size])
	}
	buf := make([]byte, total)

	binary.LittleEndian.PutUint16(buf[0:2], 0)                  // reserved
	binary.LittleEndian.PutUint16(buf[2:4], 1)                  // type: icon
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(sizes))) // count

	offset := uint32(headerSize + len(sizes)*entrySize)
	for i, size := range sizes {
		payload := imagesBySize[size]
		entry := buf[headerSize+i*entrySize:]

		entry[0] = dimByte(size)
		entry[1] = dimByte(size) // icons are always square
		entry[2] = 0             // color count
		entry[3] = 0             // reserved
		binary.LittleEndian.PutUint16(entry[4:6], 1)   // color planes
		binary.LittleEndian.PutUint16(entry[6:8], 32)  // bits per pixel
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(payload)))
		binary.LittleEndian.PutUint32(entry[12:16], offset)

		copy(buf[offset:], payload)
		offset += uint32(len(payload))
	}

	return buf, nil
}

// dimByte encodes a dimension for a directory entry, 0 meaning 256.
func dimByte(size int) byte {
	if size == 256 {
		return 0
	}
	return byte(size)
}
