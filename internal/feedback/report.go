package feedback

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// Summary aggregates a feedback file.
type Summary struct {
	Total     int
	ByType    map[Type]int
	Users     int
	First     string // earliest timestamp
	Last      string // latest timestamp
	Malformed int    // lines that are not a complete record
}

// Summarize reads JSONL feedback from r. Lines that are not valid JSON or
// lack a required field are counted as malformed and skipped. Lines have no
// length limit.
func Summarize(r io.Reader) (Summary, error) {
	sum := Summary{ByType: make(map[Type]int)}
	users := make(map[string]struct{})

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			sum.add(bytes.TrimSpace(line), users)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("read feedback: %w", err)
		}
	}

	sum.Users = len(users)
	return sum, nil
}

func (sum *Summary) add(line []byte, users map[string]struct{}) {
	if len(line) == 0 {
		return
	}
	if !gjson.ValidBytes(line) {
		sum.Malformed++
		return
	}

	fields := gjson.GetManyBytes(line, "timestamp", "user_id", "feedback_type", "description")
	ts, user, typ, desc := fields[0].String(), fields[1].String(), fields[2].String(), fields[3].String()
	if ts == "" || user == "" || desc == "" {
		sum.Malformed++
		return
	}

	t := Type(typ)
	if !t.Valid() {
		t = TypeOther
	}

	sum.Total++
	sum.ByType[t]++
	users[user] = struct{}{}
	if sum.First == "" || ts < sum.First {
		sum.First = ts
	}
	if ts > sum.Last {
		sum.Last = ts
	}
}

// SummarizeFile summarizes the feedback file at path. A missing file is an
// empty summary, not an error.
func SummarizeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Summary{ByType: make(map[Type]int)}, nil
	}
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()
	return Summarize(f)
}
