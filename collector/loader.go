package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kumaryash6352/csvpshmem-viewer/model"
)

// Trace files are named <prefix>.<pe>.<ext> with exactly three components.
const (
	filePrefix = "pperf"
	fileExt    = "csv"
)

// columns holds the resolved index of each schema column within one file's
// header. Directed and undirected byte accounting are mutually exclusive and
// detected from which columns are present.
type columns struct {
	time        int
	function    int
	duration    int
	targetPE    int
	stacktrace  int
	bytesRX     int // -1 when undirected
	bytesTX     int // -1 when undirected
	sizeBytes   int // -1 when directed
	extra       int // optional, -1 when absent
	symboltrace int // optional, -1 when absent
}

func (c *columns) kind() model.AccountingKind {
	if c.sizeBytes >= 0 {
		return model.AccountingUndirected
	}
	return model.AccountingDirected
}

// Load scans dir for per-PE trace files, parses and merges them into one
// time-sorted ProfileData. Files not matching the pperf.<pe>.csv pattern are
// ignored. Any parse failure aborts the whole load.
func Load(dir string) (*model.ProfileData, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioErr(dir, err)
	}

	var events []model.Event
	hostnames := make(map[uint32]string)
	var maxPE uint32
	loaded := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pe, ok := parseTraceName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fileEvents, hostname, err := loadFile(path, pe)
		if err != nil {
			return nil, err
		}
		if pe > maxPE {
			maxPE = pe
		}
		hostnames[pe] = hostname
		events = append(events, fileEvents...)
		loaded++
	}

	if loaded == 0 {
		return nil, ioErr(dir, fmt.Errorf("no %s.<pe>.%s files found", filePrefix, fileExt))
	}

	// Per-file order is already time-sorted, so a multi-way merge would do,
	// but a stable sort over the whole slice is plenty at trace sizes.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Raw.Time < events[j].Raw.Time
	})

	minTime := events[0].Raw.Time
	maxTime := 0.0
	for i := range events {
		if end := events[i].End(); end > maxTime {
			maxTime = end
		}
	}

	return &model.ProfileData{
		Events:    events,
		PECount:   maxPE + 1,
		Hostnames: hostnames,
		MinTime:   minTime,
		MaxTime:   maxTime,
	}, nil
}

// parseTraceName extracts the PE id from a pperf.<pe>.csv file name.
func parseTraceName(name string) (uint32, bool) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 || parts[0] != filePrefix || parts[2] != fileExt {
		return 0, false
	}
	pe, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(pe), true
}

// loadFile parses one trace file. The first record must carry the PE's
// hostname in its Extra column.
func loadFile(path string, pe uint32) ([]model.Event, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", ioErr(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, "", &LoadError{Kind: ErrEmptyFile, Path: path}
	}
	if err != nil {
		return nil, "", schemaErr(path, 0, fmt.Errorf("reading header: %w", err))
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, "", schemaErr(path, 0, err)
	}

	var events []model.Event
	record := 0
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", schemaErr(path, record+1, err)
		}
		record++
		raw, err := parseRecord(fields, cols)
		if err != nil {
			return nil, "", schemaErr(path, record, err)
		}
		events = append(events, model.Event{SourcePE: pe, Raw: raw})
	}

	if len(events) == 0 {
		return nil, "", &LoadError{Kind: ErrEmptyFile, Path: path}
	}
	hostname := events[0].Raw.Extra
	if hostname == "" {
		return nil, "", &LoadError{Kind: ErrMissingHostname, Path: path, Record: 1}
	}
	return events, hostname, nil
}

// resolveColumns maps header names to field indexes and picks the byte
// accounting schema from which columns are present.
func resolveColumns(header []string) (*columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	get := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	c := &columns{
		time:        get("Time"),
		function:    get("Function"),
		duration:    get("Duration_Sec"),
		targetPE:    get("Target_PE"),
		stacktrace:  get("Stacktrace"),
		bytesRX:     get("Bytes_RX"),
		bytesTX:     get("Bytes_TX"),
		sizeBytes:   get("Size_Bytes"),
		extra:       get("Extra"),
		symboltrace: get("Symboltrace"),
	}

	for _, req := range []struct {
		name string
		i    int
	}{
		{"Time", c.time},
		{"Function", c.function},
		{"Duration_Sec", c.duration},
		{"Target_PE", c.targetPE},
		{"Stacktrace", c.stacktrace},
	} {
		if req.i < 0 {
			return nil, fmt.Errorf("missing column %q", req.name)
		}
	}

	directed := c.bytesRX >= 0 && c.bytesTX >= 0
	undirected := c.sizeBytes >= 0
	switch {
	case directed && undirected:
		return nil, fmt.Errorf("both Bytes_RX/Bytes_TX and Size_Bytes present")
	case !directed && !undirected:
		return nil, fmt.Errorf("missing byte columns: need Bytes_RX+Bytes_TX or Size_Bytes")
	}
	return c, nil
}

func parseRecord(fields []string, c *columns) (model.RawEvent, error) {
	var raw model.RawEvent

	field := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	t, err := parseFloat("Time", field(c.time))
	if err != nil {
		return raw, err
	}
	dur, err := parseFloat("Duration_Sec", field(c.duration))
	if err != nil {
		return raw, err
	}
	if dur < 0 {
		return raw, fmt.Errorf("Duration_Sec: negative value %v", dur)
	}
	target, err := strconv.Atoi(field(c.targetPE))
	if err != nil {
		return raw, fmt.Errorf("Target_PE: %w", err)
	}

	fn := field(c.function)
	if fn == "" {
		return raw, fmt.Errorf("Function: empty")
	}

	bytes := model.ByteAccounting{Kind: c.kind()}
	if bytes.Kind == model.AccountingUndirected {
		bytes.Bytes, err = parseUint("Size_Bytes", field(c.sizeBytes))
		if err != nil {
			return raw, err
		}
	} else {
		bytes.Received, err = parseUint("Bytes_RX", field(c.bytesRX))
		if err != nil {
			return raw, err
		}
		bytes.Sent, err = parseUint("Bytes_TX", field(c.bytesTX))
		if err != nil {
			return raw, err
		}
	}

	raw = model.RawEvent{
		Time:        t,
		Function:    fn,
		Duration:    dur,
		TargetPE:    target,
		Bytes:       bytes,
		Stacktrace:  field(c.stacktrace),
		Extra:       field(c.extra),
		Symboltrace: field(c.symboltrace),
	}
	return raw, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: non-finite value %q", name, s)
	}
	return v, nil
}

func parseUint(name, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
