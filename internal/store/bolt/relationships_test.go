package bolt

import (
	"testing"

	"nomadgraph/internal/store"
)

func TestValidateRelationship(t *testing.T) {
	valid := store.RelationshipInput{FromID: "a", ToID: "b", Type: "WORKFLOW_STEP"}
	if err := validateRelationship(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := map[string]store.RelationshipInput{
		"empty type":     {FromID: "a", ToID: "b", Type: ""},
		"lowercase type": {FromID: "a", ToID: "b", Type: "workflow_step"},
		"injection":      {FromID: "a", ToID: "b", Type: "X]->(n) DETACH DELETE n//"},
		"self loop":      {FromID: "a", ToID: "a", Type: "WORKFLOW_STEP"},
	}
	for name, input := range cases {
		if err := validateRelationship(input); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
