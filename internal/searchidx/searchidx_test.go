package searchidx

import "testing"

func memIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestAddAndSearch(t *testing.T) {
	idx := memIndex(t)

	entries := []Entry{
		{ID: 1, FileName: "report1.txt", Seller: "Payan", Customer: "Dadgostari", Product: "UPS", Summary: "followup calls for UPS battery replacement"},
		{ID: 2, FileName: "report2.txt", Seller: "Hosseini", Customer: "Cement Co", Product: "Camera", Summary: "camera installation quote sent"},
	}
	for _, e := range entries {
		if err := idx.Add(e); err != nil {
			t.Fatalf("Add(%d): %v", e.ID, err)
		}
	}

	hits, err := idx.Search("battery", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != 1 {
		t.Errorf("hits = %+v, want single hit for id 1", hits)
	}

	hits, err = idx.Search("camera", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != 2 {
		t.Errorf("hits = %+v, want single hit for id 2", hits)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	idx := memIndex(t)
	if err := idx.Add(Entry{ID: 1, Summary: "routine support call"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	hits, err := idx.Search("nonexistent", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %+v, want none", hits)
	}
}

func TestRemove(t *testing.T) {
	idx := memIndex(t)
	if err := idx.Add(Entry{ID: 7, Summary: "camera installation"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := idx.Remove(7); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	hits, err := idx.Search("camera", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %+v, want none after removal", hits)
	}
}

func TestAdd_ReplacesPreviousEntry(t *testing.T) {
	idx := memIndex(t)
	if err := idx.Add(Entry{ID: 3, Summary: "old text about printers"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := idx.Add(Entry{ID: 3, Summary: "new text about servers"}); err != nil {
		t.Fatalf("re-Add: %v", err)
	}

	hits, err := idx.Search("printers", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("stale entry still matches: %+v", hits)
	}
	hits, err = idx.Search("servers", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("replacement entry missing: %+v", hits)
	}
}
