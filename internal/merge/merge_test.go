package merge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sirilvk/mktdata/internal/model"
	"github.com/sirilvk/mktdata/internal/randgen"
	"github.com/sirilvk/mktdata/internal/sampler"
	"github.com/sirilvk/mktdata/internal/writer"
)

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "MSFT.txt", model.Header+"\n")
	writeInput(t, dir, "AAPL.txt", model.Header+"\n")
	writeInput(t, dir, "notes.md", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Discover found %d files, want 2: %+v", len(files), files)
	}
	if files[0].Symbol != "AAPL" || files[0].ID != 1 {
		t.Errorf("files[0] = %+v, want AAPL with id 1", files[0])
	}
	if files[1].Symbol != "MSFT" || files[1].ID != 2 {
		t.Errorf("files[1] = %+v, want MSFT with id 2", files[1])
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Discover on missing dir expected error")
	}
}

func TestPartition(t *testing.T) {
	files := make([]File, 7)
	for i := range files {
		files[i].ID = i + 1
	}

	tests := []struct {
		workers int
		sizes   []int
	}{
		{1, []int{7}},
		{3, []int{3, 2, 2}},
		{5, []int{3, 1, 1, 1, 1}},
		{10, []int{1, 1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		groups := partition(files, tt.workers)
		var sizes []int
		total := 0
		for _, g := range groups {
			sizes = append(sizes, len(g))
			total += len(g)
		}
		if fmt.Sprint(sizes) != fmt.Sprint(tt.sizes) {
			t.Errorf("partition(7, %d) sizes = %v, want %v", tt.workers, sizes, tt.sizes)
		}
		if total != 7 {
			t.Errorf("partition(7, %d) covers %d files", tt.workers, total)
		}
	}

	if groups := partition(nil, 4); len(groups) != 0 {
		t.Errorf("partition(nil) = %v, want none", groups)
	}
}

func TestMerge_OrderAndTies(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "AAPL.txt", model.Header+`
2024-01-15 09:30:00.100,45.00,100,NYSE,BID
2024-01-15 09:30:00.300,45.10,90,EDGX,ASK
`)
	writeInput(t, dir, "MSFT.txt", model.Header+`
2024-01-15 09:30:00.100,44.00,110,ARCA,TRADE
2024-01-15 09:30:00.200,44.20,95,NYSE,BID
`)
	writeInput(t, dir, "EMPTY.txt", model.Header+"\n")

	files, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := Merge(context.Background(), files, &buf)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Merge wrote %d records, want 4", n)
	}

	want := model.MergedHeader + `
AAPL,2024-01-15 09:30:00.100,45.00,100,NYSE,BID
MSFT,2024-01-15 09:30:00.100,44.00,110,ARCA,TRADE
MSFT,2024-01-15 09:30:00.200,44.20,95,NYSE,BID
AAPL,2024-01-15 09:30:00.300,45.10,90,EDGX,ASK
`
	if buf.String() != want {
		t.Errorf("Merge output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestMerge_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "BAD.txt", model.Header+"\n2024-01-15 09:30:00.100,45.00,100\n")

	files, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Merge(context.Background(), files, &bytes.Buffer{})
	if err == nil {
		t.Fatal("Merge expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "BAD.txt") || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name file and line", err)
	}
}

func TestMergeParallel_MatchesMerge(t *testing.T) {
	dir := t.TempDir()

	w, err := sampler.NewTimeWindow(9*time.Hour+30*time.Minute, 9*time.Hour+30*time.Minute+2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	cfg := writer.GenConfig{
		Window:    w,
		Count:     200,
		BasePrice: decimal.NewFromInt(45),
		BaseSize:  100,
		Day:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
	}
	for i := 0; i < 11; i++ {
		symbol := fmt.Sprintf("S%02d", i)
		recs := writer.Generate(cfg, randgen.NewSeeded(uint64(100+i)))
		if err := writer.WriteFile(dir, symbol, recs); err != nil {
			t.Fatal(err)
		}
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	var single bytes.Buffer
	n1, err := Merge(context.Background(), files, &single)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if n1 != 11*200 {
		t.Errorf("Merge wrote %d records, want %d", n1, 11*200)
	}

	for _, workers := range []int{2, 3, 5, 20} {
		var parallel bytes.Buffer
		n2, err := MergeParallel(context.Background(), files, &parallel, workers)
		if err != nil {
			t.Fatalf("MergeParallel(%d) failed: %v", workers, err)
		}
		if n2 != n1 {
			t.Errorf("MergeParallel(%d) wrote %d records, want %d", workers, n2, n1)
		}
		if !bytes.Equal(parallel.Bytes(), single.Bytes()) {
			t.Errorf("MergeParallel(%d) output differs from Merge", workers)
		}
	}
}

func TestMergeParallel_WorkerError(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "A.txt", model.Header+"\n2024-01-15 09:30:00.100,45.00,100,NYSE,BID\n")
	writeInput(t, dir, "B.txt", model.Header+"\nnot,a,record\n")

	files, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := MergeParallel(context.Background(), files, &bytes.Buffer{}, 2); err == nil {
		t.Error("MergeParallel expected error from malformed worker input")
	}
}

func TestMerge_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	n, err := MergeParallel(context.Background(), nil, &buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || buf.String() != model.MergedHeader+"\n" {
		t.Errorf("MergeParallel(nil) = %d records, %q", n, buf.String())
	}
}
