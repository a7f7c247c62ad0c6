package renderer

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rgb" (leading # optional).
func ParseHexColor(hex string) (r, g, b int, err error) {
	value := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	if len(value) != 6 {
		return 0, 0, 0, fmt.Errorf("color %q is not #rgb or #rrggbb", hex)
	}

	rgb, parseErr := strconv.ParseUint(value, 16, 32)
	if parseErr != nil {
		return 0, 0, 0, fmt.Errorf("color %q is not hexadecimal", hex)
	}

	return int(rgb >> 16 & 0xff), int(rgb >> 8 & 0xff), int(rgb & 0xff), nil
}
