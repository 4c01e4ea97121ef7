package packager

// Item is one delivered output.
type Item struct {
	Name string
	Data []byte
}

// CollectSink retains outputs in submission order for individual delivery,
// one payload per successful item.
type CollectSink struct {
	items []Item
}

func NewCollectSink() *CollectSink {
	return &CollectSink{}
}

func (s *CollectSink) Add(name string, data []byte) error {
	s.items = append(s.items, Item{Name: name, Data: data})
	return nil
}

func (s *CollectSink) Close() error { return nil }

// Items returns the collected outputs. Valid after Close.
func (s *CollectSink) Items() []Item { return s.items }
