package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	env := Success(map[string]string{"code": "USD"})
	assert.Equal(t, ResultSuccess, env.Result)
	assert.Nil(t, env.TotalRecords)

	payload, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":1,"data":{"code":"USD"}}`, string(payload))
}

func TestSuccessListCarriesTotal(t *testing.T) {
	env := SuccessList([]string{"a"}, 37)
	require.NotNil(t, env.TotalRecords)
	assert.Equal(t, int64(37), *env.TotalRecords)

	payload, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":1,"data":["a"],"totalRecords":37}`, string(payload))
}

func TestSuccessListZeroTotalIsSerialized(t *testing.T) {
	payload, err := json.Marshal(SuccessList([]string{}, 0))
	require.NoError(t, err)
	// a zero total must still be present; clients read it to render counts
	assert.Contains(t, string(payload), `"totalRecords":0`)
}

func TestFailureEnvelope(t *testing.T) {
	payload, err := json.Marshal(Failure("No data found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":0,"message":"No data found"}`, string(payload))
}

func TestLockedEnvelope(t *testing.T) {
	env := Locked()
	assert.Equal(t, ResultLocked, env.Result)
	assert.NotEmpty(t, env.Message)
}
