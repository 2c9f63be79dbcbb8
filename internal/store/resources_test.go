package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/communitynav/navigator/models"
)

func TestCompleteReplacesWholesale(t *testing.T) {
	s := NewResourceStore()
	s.SetResources([]models.Resource{{ID: 1, Category: "food"}, {ID: 2, Category: "food"}})

	token := s.Begin()
	require.True(t, s.Complete(token, []models.Resource{{ID: 9, Category: "shelter"}}))

	got := s.Resources()
	require.Len(t, got, 1)
	require.Equal(t, int64(9), got[0].ID)
}

func TestStaleCompletionDiscarded(t *testing.T) {
	s := NewResourceStore()

	first := s.Begin()
	second := s.Begin()

	require.True(t, s.Complete(second, []models.Resource{{ID: 2}}))
	require.False(t, s.Complete(first, []models.Resource{{ID: 1}}), "superseded fetch must not land")

	got := s.Resources()
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)
}

func TestSelectionSurvivesRefresh(t *testing.T) {
	s := NewResourceStore()
	s.SetResources([]models.Resource{{ID: 1, Name: "Night Shelter"}})
	s.Select(&models.Resource{ID: 1, Name: "Night Shelter"})

	token := s.Begin()
	require.True(t, s.Complete(token, []models.Resource{{ID: 4, Name: "Community Kitchen"}}))

	sel := s.Selected()
	require.NotNil(t, sel)
	require.Equal(t, "Night Shelter", sel.Name)

	s.Select(nil)
	require.Nil(t, s.Selected())
}

func TestSelectedReturnsCopy(t *testing.T) {
	s := NewResourceStore()
	s.Select(&models.Resource{ID: 1, Name: "Night Shelter"})

	sel := s.Selected()
	sel.Name = "mutated"
	require.Equal(t, "Night Shelter", s.Selected().Name)
}

func TestClearDropsListAndSelection(t *testing.T) {
	s := NewResourceStore()
	s.SetResources([]models.Resource{{ID: 1}})
	s.Select(&models.Resource{ID: 1})
	s.SetError("Failed to load resources")
	s.Clear()

	require.Empty(t, s.Resources())
	require.Nil(t, s.Selected())
	// Clear leaves the error slot to its own setter.
	require.Equal(t, "Failed to load resources", s.Err())
	s.SetError("")
	require.Empty(t, s.Err())
}
