package lib

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
)

// Marshal() serializes a state record into a canonical byte slice
func Marshal(message any) ([]byte, ErrorI) {
	bz, err := json.Marshal(message)
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// Unmarshal() deserializes a byte slice into a state record
// NOTE: a nil byte slice is a no-op, leaving ptr zero-valued
func Unmarshal(data []byte, ptr any) ErrorI {
	if data == nil || ptr == nil {
		return nil
	}
	if err := json.Unmarshal(data, ptr); err != nil {
		return ErrJSONUnmarshal(err)
	}
	return nil
}

// MarshalJSONIndent() serializes a message into an indented JSON byte slice
func MarshalJSONIndent(message any) ([]byte, ErrorI) {
	bz, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return nil, ErrJSONMarshal(err)
	}
	return bz, nil
}

// NewJSONFromFile() reads a json object from a file in the data directory
func NewJSONFromFile(o any, dataDirPath, filePath string) ErrorI {
	bz, err := os.ReadFile(filepath.Join(dataDirPath, filePath))
	if err != nil {
		return ErrReadFile(err)
	}
	if e := json.Unmarshal(bz, o); e != nil {
		return ErrJSONUnmarshal(e)
	}
	return nil
}

// SaveJSONToFile() saves a json object to a file in the data directory
func SaveJSONToFile(j any, dataDirPath, filePath string) (err ErrorI) {
	bz, err := MarshalJSONIndent(j)
	if err != nil {
		return
	}
	if e := os.WriteFile(filepath.Join(dataDirPath, filePath), bz, os.ModePerm); e != nil {
		return ErrWriteFile(e)
	}
	return
}

// HexBytes is a byte slice that JSON-marshals as a hexadecimal string;
// it is the wire and storage representation of an Identity
type HexBytes []byte

// String() converts hex bytes to a string
func (x HexBytes) String() string { return hex.EncodeToString(x) }

// MarshalJSON() satisfies the json.Marshaler interface for HexBytes
func (x HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON() satisfies the json.Unmarshaler interface for HexBytes
func (x *HexBytes) UnmarshalJSON(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); err != nil {
		return
	}
	*x, err = hex.DecodeString(s)
	return
}

// Equals() compares two HexBytes for byte equality
func (x HexBytes) Equals(o HexBytes) bool { return bytes.Equal(x, o) }

// StringToBytes() converts a hexadecimal string back into a byte slice
func StringToBytes(s string) ([]byte, ErrorI) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrStringToBytes(err)
	}
	return b, nil
}

/*
	Key helpers for the schemaless key-value store:

	- Prefixes allow 'grouping' of similar records and prefix iteration over them
	- Length prefixed append separates the segments of a key unambiguously
	- BigEndian encoding of uint64 preserves numeric order under the store's
	  lexicographical key sorting
*/

// JoinLenPrefix() combines segments into a single key, prefixing each segment with its length
func JoinLenPrefix(toAppend ...[]byte) (res []byte) {
	for _, bz := range toAppend {
		if bz == nil {
			continue
		}
		res = append(res, byte(len(bz)))
		res = append(res, bz...)
	}
	return
}

// DecodeLengthPrefixed() splits a key into its length-prefixed segments
func DecodeLengthPrefixed(key []byte) (segments [][]byte) {
	for i := 0; i < len(key); {
		length := int(key[i])
		i++
		if i+length > len(key) {
			return nil
		}
		segments = append(segments, key[i:i+length])
		i += length
	}
	return
}

// FormatUint64() encodes a uint64 as fixed-width big-endian bytes
func FormatUint64(u uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, u)
	return b
}

// Uint64FromBytes() decodes fixed-width big-endian bytes back to a uint64
func Uint64FromBytes(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// Append() joins two byte slices into a freshly allocated slice
func Append(a, b []byte) (res []byte) {
	res = make([]byte, 0, len(a)+len(b))
	res = append(res, a...)
	return append(res, b...)
}
