package store

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

// EncodeDataset serializes a dataset with msgpack
func EncodeDataset(d *schema.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(d.Snapshot()); err != nil {
		return nil, fmt.Errorf("unable to encode dataset with msgpack error: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDataset rebuilds a dataset serialized by EncodeDataset
func DecodeDataset(input []byte) (*schema.Dataset, error) {
	var s schema.DatasetSnapshot
	dec := msgpack.NewDecoder(bytes.NewBuffer(input))
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("unable to decode dataset with msgpack error: %w", err)
	}
	return schema.FromSnapshot(s), nil
}
