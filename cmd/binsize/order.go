package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/unkn0wn-root/binser/bin"
	"github.com/unkn0wn-root/binser/record"
)

// Status is stored as its single-byte underlying value.
type Status uint8

const (
	StatusPending Status = iota
	StatusPaid
	StatusShipped
	StatusCancelled
)

type Line struct {
	SKU   string  `yaml:"sku" json:"sku" cbor:"sku" msgpack:"sku"`
	Qty   uint32  `yaml:"qty" json:"qty" cbor:"qty" msgpack:"qty"`
	Price float64 `yaml:"price" json:"price" cbor:"price" msgpack:"price"`
}

type Order struct {
	ID       uint64            `yaml:"id" json:"id" cbor:"id" msgpack:"id"`
	Customer string            `yaml:"customer" json:"customer" cbor:"customer" msgpack:"customer"`
	Status   Status            `yaml:"status" json:"status" cbor:"status" msgpack:"status"`
	Created  int64             `yaml:"created" json:"created" cbor:"created" msgpack:"created"`
	Lines    []Line            `yaml:"lines" json:"lines" cbor:"lines" msgpack:"lines"`
	Labels   map[string]string `yaml:"labels" json:"labels" cbor:"labels" msgpack:"labels"`
	Geo      [2]float32        `yaml:"geo" json:"geo" cbor:"geo" msgpack:"geo"`
}

var (
	lineSchema = record.Register(
		record.Field("sku", bin.String, func(l *Line) *string { return &l.SKU }),
		record.Field("qty", bin.Uint32, func(l *Line) *uint32 { return &l.Qty }),
		record.Field("price", bin.Float64, func(l *Line) *float64 { return &l.Price }),
	)
	orderSchema = record.Register(
		record.Field("id", bin.Uint64, func(o *Order) *uint64 { return &o.ID }),
		record.Field("customer", bin.String, func(o *Order) *string { return &o.Customer }),
		record.Field("status", bin.Fixed[Status](), func(o *Order) *Status { return &o.Status }),
		record.Field("created", bin.Int64, func(o *Order) *int64 { return &o.Created }),
		record.Field("lines", bin.Slice[Line](lineSchema), func(o *Order) *[]Line { return &o.Lines }),
		record.Field("labels", bin.Map(bin.String, bin.String), func(o *Order) *map[string]string { return &o.Labels }),
		record.Field("geo", bin.Array[[2]float32, float32](), func(o *Order) *[2]float32 { return &o.Geo }),
	)
)

func (Line) Schema() *record.Schema[Line]   { return lineSchema }
func (Order) Schema() *record.Schema[Order] { return orderSchema }

var (
	skus      = []string{"A-100", "A-200", "B-17", "C-9000", "ZZ-1"}
	customers = []string{"ada", "grace", "linus", "barbara", "ken"}
	regions   = []string{"eu-west", "us-east", "ap-south"}
)

// generate builds n pseudo-random orders. The same seed always yields the
// same corpus.
func generate(n int, seed uint64) []Order {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Order, n)
	for i := range out {
		o := Order{
			ID:       uint64(i + 1),
			Customer: customers[r.IntN(len(customers))],
			Status:   Status(r.IntN(int(StatusCancelled) + 1)),
			Created:  1_700_000_000 + r.Int64N(90*24*3600),
			Lines:    make([]Line, 1+r.IntN(4)),
			Geo:      [2]float32{float32(r.IntN(180)) - 90, float32(r.IntN(360)) - 180},
		}
		for j := range o.Lines {
			o.Lines[j] = Line{
				SKU:   skus[r.IntN(len(skus))],
				Qty:   uint32(1 + r.IntN(20)),
				Price: float64(r.IntN(100_00)) / 100,
			}
		}
		if r.IntN(2) == 0 {
			o.Labels = map[string]string{
				"region":  regions[r.IntN(len(regions))],
				"channel": fmt.Sprintf("web-%d", r.IntN(3)),
			}
		}
		out[i] = o
	}
	return out
}
