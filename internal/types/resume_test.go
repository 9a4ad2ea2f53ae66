package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedResume_UnmarshalWellFormed(t *testing.T) {
	data := `{"name":"Ada","skills":["Figma","Sketch"],"degree":["B.Tech"],"experience":["Acme 2019-2021"],"total_experience":3.5}`

	var p ParsedResume
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []string{"Figma", "Sketch"}, p.Skills)
	assert.Equal(t, []string{"B.Tech"}, p.Degree)
	assert.Equal(t, []string{"Acme 2019-2021"}, p.Experience)
	require.NotNil(t, p.TotalExperience)
	assert.Equal(t, 3.5, *p.TotalExperience)
}

func TestParsedResume_UnmarshalWrongTypes(t *testing.T) {
	data := `{"name":42,"skills":"Python","degree":null,"experience":[1,"Intern",null],"total_experience":"n/a"}`

	var p ParsedResume
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Empty(t, p.Name)
	assert.Equal(t, []string{"Python"}, p.Skills)
	assert.Empty(t, p.Degree)
	assert.Equal(t, []string{"Intern"}, p.Experience)
	assert.Nil(t, p.TotalExperience, "non-numeric total_experience should decode as absent")
}

func TestParsedResume_UnmarshalNumericStringIsAbsent(t *testing.T) {
	for _, data := range []string{`{"total_experience":" 4 "}`, `{"total_experience":"5"}`, `{"total_experience":null}`} {
		var p ParsedResume
		require.NoError(t, json.Unmarshal([]byte(data), &p))
		assert.Nil(t, p.TotalExperience, data)
		assert.Nil(t, p.Skills)
	}
}

func TestParsedResume_UnmarshalZeroKept(t *testing.T) {
	var p ParsedResume
	require.NoError(t, json.Unmarshal([]byte(`{"total_experience":0}`), &p))
	require.NotNil(t, p.TotalExperience)
	assert.Equal(t, 0.0, *p.TotalExperience)
}

func TestParsedResume_UnmarshalNotAnObject(t *testing.T) {
	var p ParsedResume
	assert.Error(t, json.Unmarshal([]byte(`["skills"]`), &p))
}

func TestDegreeLevel_String(t *testing.T) {
	assert.Equal(t, "none", DegreeNone.String())
	assert.Equal(t, "bachelor", DegreeBachelor.String())
	assert.Equal(t, "master", DegreeMaster.String())
	assert.Equal(t, "doctorate", DegreeDoctorate.String())
}
