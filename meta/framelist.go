package meta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxFrameListLen caps how many entries a frame list may expand to.
const MaxFrameListLen = 1 << 14

var (
	// ErrFrameOutOfRange marks a frame list naming a frame that does not exist.
	ErrFrameOutOfRange = errors.New("frame out of range")
	// ErrFrameListTooLong marks a frame list expanding past MaxFrameListLen.
	ErrFrameListTooLong = errors.New("frame list too long")
)

// IsLimitError reports whether err is a well-formed frame list that breaks a
// bound, as opposed to one that does not parse.
func IsLimitError(err error) bool {
	return errors.Is(err, ErrFrameOutOfRange) || errors.Is(err, ErrFrameListTooLong)
}

// ParseFrameList decodes a compact frame list as used by decals:
//
//	"0,1,2"     literal indices
//	"0-3"       inclusive range, may count down ("3-0")
//	"4*3"       index 4 repeated three times
//
// Items are comma separated and may be combined freely ("0-2,2*4,1").
func ParseFrameList(s string) ([]int, error) {
	return ParseFrameListBounded(s, 0)
}

// ParseFrameListBounded is ParseFrameList with every index checked against
// frameCount before anything is expanded. A frameCount of 0 skips the index
// check; the MaxFrameListLen cap always applies.
func ParseFrameListBounded(s string, frameCount int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}

	items, err := parseItems(s)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, it := range items {
		if frameCount > 0 && (it.value >= frameCount || it.to >= frameCount) {
			return nil, fmt.Errorf("meta: %q: %w (have %d frames)", it.src, ErrFrameOutOfRange, frameCount)
		}
		total += it.len()
		if total > MaxFrameListLen {
			return nil, fmt.Errorf("meta: %w (more than %d entries)", ErrFrameListTooLong, MaxFrameListLen)
		}
	}

	out := make([]int, 0, total)
	for _, it := range items {
		out = it.appendTo(out)
	}
	return out, nil
}

type frameItem struct {
	src   string
	kind  byte // '=' literal, '-' range, '*' repeat
	value int  // literal, range start or repeated index
	to    int  // range end; equal to value otherwise
	count int  // repeat count
}

// len is the expanded length, saturating just past MaxFrameListLen so sums
// cannot overflow.
func (it frameItem) len() int {
	n := 1
	switch it.kind {
	case '-':
		d := it.to - it.value
		if d < 0 {
			d = -d
		}
		n = min(d, MaxFrameListLen) + 1
	case '*':
		n = it.count
	}
	return min(n, MaxFrameListLen+1)
}

func (it frameItem) appendTo(out []int) []int {
	switch it.kind {
	case '-':
		step := 1
		if it.to < it.value {
			step = -1
		}
		for i := it.value; i != it.to; i += step {
			out = append(out, i)
		}
		return append(out, it.to)
	case '*':
		for i := 0; i < it.count; i++ {
			out = append(out, it.value)
		}
		return out
	}
	return append(out, it.value)
}

func parseItems(s string) ([]frameItem, error) {
	var items []frameItem
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		switch {
		case strings.Contains(item, "-"):
			from, to, err := splitPair(item, "-")
			if err != nil {
				return nil, err
			}
			items = append(items, frameItem{src: item, kind: '-', value: from, to: to})
		case strings.Contains(item, "*"):
			value, count, err := splitPair(item, "*")
			if err != nil {
				return nil, err
			}
			if count < 0 {
				return nil, fmt.Errorf("meta: negative repeat count in %q", item)
			}
			items = append(items, frameItem{src: item, kind: '*', value: value, to: value, count: count})
		default:
			v, err := strconv.Atoi(item)
			if err != nil {
				return nil, fmt.Errorf("meta: frame %q: %w", item, err)
			}
			if v < 0 {
				return nil, fmt.Errorf("meta: negative frame %q", item)
			}
			items = append(items, frameItem{src: item, kind: '=', value: v, to: v})
		}
	}
	return items, nil
}

func splitPair(item, sep string) (int, int, error) {
	parts := strings.Split(item, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("meta: malformed frame item %q", item)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("meta: frame item %q: %w", item, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("meta: frame item %q: %w", item, err)
	}
	return a, b, nil
}
