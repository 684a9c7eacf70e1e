package internal

import "errors"

// LE stands for "little endian"

func DecodeUint16LE(buffer []byte) uint16 {
	if len(buffer) < 2 { panic(len(buffer)) }
	return uint16(buffer[0]) | (uint16(buffer[1]) << 8)
}

func DecodeUint32LE(buffer []byte) uint32 {
	if len(buffer) < 4 { panic(len(buffer)) }
	return (uint32(buffer[0]) <<  0) | (uint32(buffer[1]) <<  8) |
	       (uint32(buffer[2]) << 16) | (uint32(buffer[3]) << 24)
}

func AppendUint8(buffer []byte, value byte) []byte {
	return append(buffer, value)
}

func AppendUint16LE(buffer []byte, value uint16) []byte {
	return append(buffer, byte(value), byte(value >> 8))
}

func AppendUint32LE(buffer []byte, value uint32) []byte {
	return append(buffer, byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24))
}

func EncodeUint32LE(buffer []byte, value uint32) {
	if len(buffer) < 4 { panic("invalid usage of EncodeUint32LE") }
	buffer[0] = byte(value)
	buffer[1] = byte(value >>  8)
	buffer[2] = byte(value >> 16)
	buffer[3] = byte(value >> 24)
}

func AppendShortString(buffer []byte, str string) []byte {
	if len(str) > 255 { panic("AppendShortString() can't append string with len() > 255") }
	return append(append(buffer, uint8(len(str))), str...)
}

// The contents might be cleared.
func SetSliceSize[T any](buffer []T, size int) []T {
	if cap(buffer) >= size {
		return buffer[ : size]
	} else {
		return make([]T, size)
	}
}

func GrowSliceByN[T any](buffer []T, increase int) []T {
	newSize := len(buffer) + increase
	if cap(buffer) >= newSize {
		return buffer[ : newSize]
	} else {
		newBuffer := make([]T, newSize)
		copy(newBuffer, buffer)
		return newBuffer
	}
}

func ValidateBasicSpacedName(name string) error {
	if len(name) > 32 { return errors.New("name can't exceed 32 characters") }
	if len(name) == 0 { return errors.New("name can't be empty") }

	for i := 0; i < len(name); i++ {
		if isAZaz09(name[i]) || name[i] == '-' || name[i] == ' ' || name[i] == '.' { continue }
		return errors.New("name contains invalid character")
	}

	return nil
}

func isAZaz09(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')
}
