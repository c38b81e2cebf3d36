package artists

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// AuxDescription is the TXXX description under which the full list is
// stored. The suffix is the encoding version; bump it if the value format
// ever changes so old files are not misread.
const AuxDescription = "GENRE_FILL_ARTISTS_V1"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeAux renders a list as the auxiliary frame value (a JSON array).
func EncodeAux(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode artist list: %w", err)
	}
	return string(data), nil
}

// DecodeAux parses an auxiliary frame value back into a normalized list.
func DecodeAux(value string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, fmt.Errorf("decode artist list: %w", err)
	}
	return Normalize(list), nil
}
