package youtube

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultBucketSeconds is the transcript timestamp interval used when none
// is configured.
const DefaultBucketSeconds = 30

// FormatTranscript groups caption lines into fixed-width time buckets and
// renders them as "[MM:SS]" blocks separated by blank lines. Grouping uses
// only the numeric start offset, so duplicate or out-of-order timestamps are
// tolerated; buckets are emitted in ascending index order regardless of
// input order. Minutes may exceed 59; there is no hour component.
func FormatTranscript(lines []CaptionLine, bucketSeconds int) string {
	if bucketSeconds <= 0 {
		bucketSeconds = DefaultBucketSeconds
	}
	widthMS := int64(bucketSeconds) * 1000

	buckets := make(map[int][]string)
	for _, line := range lines {
		idx := int(line.StartMS / widthMS)
		buckets[idx] = append(buckets[idx], line.Text)
	}

	indexes := make([]int, 0, len(buckets))
	for idx := range buckets {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	blocks := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s\n",
			formatTimestamp(idx*bucketSeconds),
			strings.Join(buckets[idx], " "),
		))
	}
	return strings.Join(blocks, "\n")
}

// formatTimestamp renders seconds as zero-padded MM:SS.
func formatTimestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
