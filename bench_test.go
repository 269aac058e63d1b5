package ejson_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/ejson-go/ejson"
)

// benchInput builds a moderately nested document so the reader exercises
// strings, numbers, literals and both container types.
func benchInput() []byte {
	var sb strings.Builder
	w := ejson.NewWriter(&sb, ejson.CompactPolicy{})
	w.BeginArray()
	for i := 0; i < 2000; i++ {
		w.BeginObject()
		w.WriteStringField("name", fmt.Sprintf("record %d with a \"quoted\" part\n", i))
		w.WriteNumberField("index", float64(i))
		w.WriteNumberField("score", float64(i)*0.375)
		w.WriteBoolField("even", i%2 == 0)
		w.WriteNullField("blank")
		w.BeginArrayField("tags")
		w.WriteString("alpha")
		w.WriteString("beta")
		w.WriteNumber(float64(i % 7))
		w.EndArray()
		w.EndObject()
	}
	w.EndArray()
	if err := w.Close(); err != nil {
		panic(err)
	}
	return []byte(sb.String())
}

func BenchmarkReader(b *testing.B) {
	input := benchInput()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Reader", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r := ejson.NewReader(bytes.NewReader(input))
			for {
				n, ok := r.ReadNext()
				if !ok {
					if err := r.Err(); err != nil {
						b.Fatalf("Unexpected error: %v", err)
					}
					break
				}

				// The standard library Decoder converts tokens to values.
				// For a fair comparison, touch the decoded data too.
				switch n {
				case ejson.String:
					r.StringValue()
				case ejson.Number:
					r.NumberValue()
				case ejson.Boolean:
					r.BoolValue()
				}
			}
		}
	})
}
