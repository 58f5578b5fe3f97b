package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

func TestFingerprint(t *testing.T) {
	r := richRepresentation(t)
	defer r.Free()

	fp, err := Fingerprint(r)
	require.NoError(t, err)
	assert.Len(t, fp, FingerprintSize*2)

	data, err := EncodeText(r, true)
	require.NoError(t, err)
	back, err := DecodeText(data)
	require.NoError(t, err)
	defer back.Free()

	again, err := Fingerprint(back)
	require.NoError(t, err)
	assert.Equal(t, fp, again, "fingerprint changed across a text round trip")

	require.NoError(t, back.SetInt("brightness", 61))
	changed, err := Fingerprint(back)
	require.NoError(t, err)
	assert.NotEqual(t, fp, changed)
}

func TestFingerprintErrors(t *testing.T) {
	_, err := Fingerprint(nil)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}
