package persistence

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awieserg/Notes-Ibacy/internal/model"
	pkgerrors "github.com/awieserg/Notes-Ibacy/pkg/errors"
)

func fixtureSnapshot() model.Snapshot {
	hours := 30
	return model.Snapshot{
		Students: []model.Student{
			{ID: "s1", LastName: "Koffi", FirstName: "Awa", Class: model.ClassLevel2, BirthDate: "2000-05-01"},
		},
		Teachers: []model.Teacher{
			{ID: "t1", LastName: "Yao", FirstName: "Paul", Subjects: model.StringList{"Grec"}},
		},
		Courses: []model.Course{
			{ID: "c1", Name: "Grec I", SubjectName: "Grec", Coefficient: 3, Hours: &hours, TeacherID: "t1"},
		},
		Grades: []model.Grade{
			{ID: "g1", StudentID: "s1", CourseID: "c1", Value: 12.5, Semester: model.Semester1, Appreciation: "Assez bien"},
		},
	}
}

func TestEncode_PersistedFieldNames(t *testing.T) {
	data, err := Encode(fixtureSnapshot())
	require.NoError(t, err)

	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.ElementsMatch(t, []string{"etudiants", "enseignants", "cours", "notes"}, keys(raw))
	assert.ElementsMatch(t, []string{"id", "nom", "prenom", "classe", "dateNaissance"}, keys(raw["etudiants"][0]))
	assert.ElementsMatch(t, []string{"id", "nom", "prenom", "matieres"}, keys(raw["enseignants"][0]))
	assert.ElementsMatch(t, []string{"id", "nom", "description", "matiereNom", "coefficient", "heures", "enseignantId"}, keys(raw["cours"][0]))
	assert.ElementsMatch(t, []string{"id", "etudiantId", "coursId", "valeur", "semestre", "appreciation"}, keys(raw["notes"][0]))
	assert.Equal(t, "2", raw["etudiants"][0]["classe"])
	assert.Equal(t, float64(1), raw["notes"][0]["semestre"])
}

func TestEncode_EmptyCollectionsAreArrays(t *testing.T) {
	data, err := Encode(model.Snapshot{Teachers: []model.Teacher{{ID: "t1"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"etudiants": [],
		"enseignants": [{"id":"t1","nom":"","prenom":"","matieres":[]}],
		"cours": [],
		"notes": []
	}`, string(data))
}

func TestEncode_DoesNotMutateInput(t *testing.T) {
	snap := model.Snapshot{Teachers: []model.Teacher{{ID: "t1"}}}
	_, err := Encode(snap)
	require.NoError(t, err)
	assert.Nil(t, snap.Teachers[0].Subjects)
}

func TestDecode_RoundTrip(t *testing.T) {
	want := fixtureSnapshot()
	data, err := Encode(want)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecode_MissingCollectionsAreEmpty(t *testing.T) {
	got, err := Decode([]byte(`{"etudiants":[{"id":"s1","nom":"A","prenom":"B","classe":"1","dateNaissance":""}]}`))
	require.NoError(t, err)
	assert.Len(t, got.Students, 1)
	assert.NotNil(t, got.Teachers)
	assert.Empty(t, got.Courses)
	assert.Empty(t, got.Grades)
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte(`{"etudiants": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrCorruptSnapshot))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
