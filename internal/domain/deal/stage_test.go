package deal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOrder(t *testing.T) {
	require.Len(t, Stages, 6)
	assert.Equal(t, 0, StageProspect.Index())
	assert.Equal(t, 5, StageLost.Index())
	assert.Equal(t, -1, Stage("archived").Index())
	assert.False(t, Stage("archived").Known())
	assert.Equal(t, "Negotiation", StageNegotiation.Label())
}

func TestStageOrDefault(t *testing.T) {
	assert.Equal(t, StageWon, StageOrDefault(" won "))
	assert.Equal(t, StageProspect, StageOrDefault(""))
	assert.Equal(t, StageProspect, StageOrDefault("Won"))
	assert.Equal(t, StageProspect, StageOrDefault("closed"))
}

func TestCountsTowardPipeline(t *testing.T) {
	for _, s := range Stages {
		assert.Equal(t, s != StageLost, s.CountsTowardPipeline(), s)
	}
}

func TestStageChangeMarshalsOnlyStage(t *testing.T) {
	out, err := json.Marshal(StageChange(StageWon))
	require.NoError(t, err)
	assert.JSONEq(t, `{"stage":"won"}`, string(out))
}

func TestUpdateDealFields(t *testing.T) {
	var req UpdateDealRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"  Renewal ","value":"abc","contact_id":""}`), &req))

	fields := req.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Column)
	assert.Equal(t, "Renewal", fields[0].Value)
	assert.Equal(t, "value", fields[1].Column)
	assert.Equal(t, 0.0, fields[1].Value)
	assert.Equal(t, "contact_id", fields[2].Column)
	assert.Nil(t, fields[2].Value)
}

func TestContactName(t *testing.T) {
	first, last := "Bob", "Stone"
	assert.Equal(t, "Bob Stone", Deal{ContactFirstName: &first, ContactLastName: &last}.ContactName())
	assert.Equal(t, "Bob", Deal{ContactFirstName: &first}.ContactName())
	assert.Equal(t, "", Deal{}.ContactName())
}
