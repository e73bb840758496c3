package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

func TestDatasetCodec(t *testing.T) {
	data, err := EncodeDataset(testDataset)
	require.NoError(t, err)

	d, err := DecodeDataset(data)
	require.NoError(t, err)
	assert.Equal(t, testDataset.Records(), d.Records())
	assert.Equal(t, []string{"PatientID"}, d.ExtraColumns())
	assert.Equal(t, []string{"p-1"}, d.Extras(0))
}

func TestDatasetCodecEmpty(t *testing.T) {
	data, err := EncodeDataset(schema.NewDataset(nil))
	require.NoError(t, err)

	d, err := DecodeDataset(data)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Nil(t, d.ExtraColumns())
}

func TestDecodeDatasetInvalid(t *testing.T) {
	_, err := DecodeDataset([]byte{0xc1})
	assert.Error(t, err)
}

func TestDatasetKey(t *testing.T) {
	assert.Equal(t, "health-metrics:dataset:abc", datasetKey("abc"))
}
