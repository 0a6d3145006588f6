package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildListFilterEmpty(t *testing.T) {
	filter := BuildListFilter(ListQuery{})
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestBuildListFilterSearch(t *testing.T) {
	filter := BuildListFilter(ListQuery{Search: "mumbai"})

	or, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or clause, got %v", filter)
	}
	if len(or) != 4 {
		t.Fatalf("expected 4 search fields, got %d", len(or))
	}

	first := or[0].(bson.M)
	re, ok := first["vehicleName"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex match, got %T", first["vehicleName"])
	}
	if re.Options != "i" {
		t.Fatalf("expected case-insensitive regex, got options %q", re.Options)
	}
	if re.Pattern != "mumbai" {
		t.Fatalf("unexpected pattern %q", re.Pattern)
	}
}

func TestBuildListFilterEscapesRegexMeta(t *testing.T) {
	filter := BuildListFilter(ListQuery{Search: "a.c"})
	or := filter["$or"].(bson.A)
	re := or[0].(bson.M)["vehicleName"].(primitive.Regex)
	if re.Pattern != `a\.c` {
		t.Fatalf("expected quoted pattern, got %q", re.Pattern)
	}
}

func TestBuildListFilterStatusAndSearchCombine(t *testing.T) {
	filter := BuildListFilter(ListQuery{Search: "ram", Status: "in-transit"})

	if filter["status"] != "in-transit" {
		t.Fatalf("expected status constraint, got %v", filter["status"])
	}
	if _, ok := filter["$or"]; !ok {
		t.Fatal("expected search clause alongside status")
	}
}

func TestSortSpec(t *testing.T) {
	spec := SortSpec("vehicleName", "asc")
	if spec[0].Key != "vehicleName" || spec[0].Value != 1 {
		t.Fatalf("unexpected sort spec %v", spec)
	}

	spec = SortSpec("vehicleName", "desc")
	if spec[0].Value != -1 {
		t.Fatalf("expected descending, got %v", spec)
	}

	// Unknown fields must not reach the database.
	spec = SortSpec("$where", "asc")
	if spec[0].Key != "createdAt" {
		t.Fatalf("expected fallback to createdAt, got %v", spec)
	}

	spec = SortSpec("", "")
	if spec[0].Key != "createdAt" || spec[0].Value != -1 {
		t.Fatalf("expected createdAt desc default, got %v", spec)
	}
}
