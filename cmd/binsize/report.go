package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/unkn0wn-root/binser/codec"
)

// codecs known to the CLI, by flag name.
var codecs = map[string]func() (codec.Codec[Order], error){
	"binary": func() (codec.Codec[Order], error) { return codec.Record[Order](), nil },
	"cbor": func() (codec.Codec[Order], error) {
		return codec.NewCBOR[Order](codec.CBOROptions{Deterministic: true})
	},
	"msgpack": func() (codec.Codec[Order], error) {
		return codec.Msgpack[Order]{SortMapKeys: true, CompactInts: true}, nil
	},
	"json": func() (codec.Codec[Order], error) { return codec.JSON[Order]{}, nil },
}

type row struct {
	Codec   string  `json:"codec"`
	Records int     `json:"records"`
	Bytes   int     `json:"bytes"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Avg     float64 `json:"avg"`
	VsJSON  float64 `json:"vs_json,omitempty"`
}

type mismatchError struct {
	codec string
	id    uint64
	diff  string
}

func (e *mismatchError) Error() string {
	return fmt.Sprintf("%s: order %d did not round-trip (-want +got):\n%s", e.codec, e.id, e.diff)
}

var equateOpts = cmp.Options{cmpopts.EquateEmpty()}

// measure encodes every order with the named codec, checks that it decodes
// back to an equal value and returns the size statistics.
func measure(name string, c codec.Codec[Order], orders []Order) (row, error) {
	r := row{Codec: name, Records: len(orders)}
	for i, o := range orders {
		b, err := c.Encode(o)
		if err != nil {
			return r, fmt.Errorf("%s: encode order %d: %w", name, o.ID, err)
		}
		got, err := c.Decode(b)
		if err != nil {
			return r, fmt.Errorf("%s: decode order %d: %w", name, o.ID, err)
		}
		if diff := cmp.Diff(o, got, equateOpts); diff != "" {
			return r, &mismatchError{codec: name, id: o.ID, diff: diff}
		}
		n := len(b)
		r.Bytes += n
		if i == 0 || n < r.Min {
			r.Min = n
		}
		if n > r.Max {
			r.Max = n
		}
	}
	if r.Records > 0 {
		r.Avg = float64(r.Bytes) / float64(r.Records)
	}
	return r, nil
}

func relate(rows []row) {
	var base int
	for _, r := range rows {
		if r.Codec == "json" {
			base = r.Bytes
		}
	}
	if base == 0 {
		return
	}
	for i := range rows {
		rows[i].VsJSON = float64(rows[i].Bytes) / float64(base)
	}
}

func writeTable(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "codec\trecords\tbytes\tmin\tmax\tavg\tvs json\t")
	for _, r := range rows {
		ratio := "-"
		if r.VsJSON > 0 {
			ratio = fmt.Sprintf("%.2f", r.VsJSON)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f\t%s\t\n",
			r.Codec, r.Records, r.Bytes, r.Min, r.Max, r.Avg, ratio)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, rows []row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func parseCodecs(list string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		if _, ok := codecs[name]; !ok {
			return nil, fmt.Errorf("unknown codec %q", name)
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no codecs selected")
	}
	return out, nil
}
