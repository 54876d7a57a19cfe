package terminal

// Transcript 是按显示顺序（旧的在前）排列的条目序列。
// 它是值类型：Append/Replace 返回新的 Transcript，不会修改接收者或与其共享底层数组。
type Transcript struct {
	entries []Entry
}

func NewTranscript(entries ...Entry) Transcript {
	return Transcript{entries: cloneEntries(entries)}
}

func (t Transcript) Len() int { return len(t.entries) }

// Entries 返回条目的副本。
func (t Transcript) Entries() []Entry { return cloneEntries(t.entries) }

func (t Transcript) At(i int) (Entry, bool) {
	if i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Append 在末尾追加条目。
func (t Transcript) Append(entries ...Entry) Transcript {
	out := make([]Entry, 0, len(t.entries)+len(entries))
	out = append(out, t.entries...)
	out = append(out, entries...)
	return Transcript{entries: out}
}

// Replace 整体替换为给定条目（clear 的效果）。
func (t Transcript) Replace(entries []Entry) Transcript {
	return NewTranscript(entries...)
}

// Links 返回所有可导航条目的下标，按显示顺序。
func (t Transcript) Links() []int {
	var idx []int
	for i, e := range t.entries {
		if e.Navigable() {
			idx = append(idx, i)
		}
	}
	return idx
}

func cloneEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
