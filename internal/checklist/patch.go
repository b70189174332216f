package checklist

import (
	"sort"

	"github.com/sandeepkv93/pomo/internal/model"
)

// Patch applies sync resolutions to the raw lines of a checklist file.
//
// Each item claims the first checklist line with the same text that no
// earlier item in the call has claimed, so duplicate texts map onto
// successive lines. Claimed lines keep their indentation and get a new
// marker, or are deleted for ResolutionRemove. Unmatched items are appended
// as unindented lines unless they are removals. An appended line stays
// unclaimed, so a later item with the same text rewrites it in place instead
// of appending again. Every other line is kept verbatim and in place.
func Patch(lines []string, items []model.SyncItem) []string {
	out := make([]string, len(lines), len(lines)+len(items))
	copy(out, lines)

	used := make(map[int]bool, len(items))
	remove := make([]int, 0)
	for _, item := range items {
		idx, found := findLine(out, item.Text, used)
		if !found {
			if item.Resolution == model.ResolutionRemove {
				continue
			}
			out = append(out, FormatLine("", item.Text, item.Resolution == model.ResolutionComplete))
			continue
		}
		used[idx] = true
		switch item.Resolution {
		case model.ResolutionIncomplete:
			out[idx] = FormatLine(indentOf(out[idx]), item.Text, false)
		case model.ResolutionComplete:
			out[idx] = FormatLine(indentOf(out[idx]), item.Text, true)
		case model.ResolutionRemove:
			remove = append(remove, idx)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(remove)))
	for _, idx := range remove {
		out = append(out[:idx], out[idx+1:]...)
	}
	return out
}

func findLine(lines []string, text string, used map[int]bool) (int, bool) {
	for idx, line := range lines {
		if used[idx] {
			continue
		}
		if got, _, ok := MatchLine(line); ok && got == text {
			return idx, true
		}
	}
	return 0, false
}
