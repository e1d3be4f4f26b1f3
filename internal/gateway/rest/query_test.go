package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Operation
	}{
		{"api version", `{ apiVersion }`, Operation{Kind: OpAPIVersion}},
		{"api version compact", `{apiVersion}`, Operation{Kind: OpAPIVersion}},
		{"recipes", `{ recipes { title } }`, Operation{Kind: OpRecipes}},
		{"recipes full selection", `{ recipes { title ingredients { name qty } instructions tags media { anchor url } } }`, Operation{Kind: OpRecipes}},
		{"recipe", `{ recipe(title: "Pancakes") { title } }`, Operation{Kind: OpRecipe, Title: "Pancakes"}},
		{"recipe spaced args", `{ recipe ( title : "Beef Stew" ) { title } }`, Operation{Kind: OpRecipe, Title: "Beef Stew"}},
		{"query keyword", `query { recipes { title } }`, Operation{Kind: OpRecipes}},
		{"named operation", `query ListAll { recipes { title } }`, Operation{Kind: OpRecipes}},
		{"escaped quote in title", `{ recipe(title: "Mom's \"Secret\" Sauce") }`, Operation{Kind: OpRecipe, Title: `Mom's "Secret" Sauce`}},
		{"empty title", `{ recipe(title: "") }`, Operation{Kind: OpRecipe, Title: ""}},
		{"comma separators", `{ recipe(title: "A",) }`, Operation{Kind: OpRecipe, Title: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
		})
	}
}

func TestParseQuery_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ``},
		{"no selection set", `apiVersion`},
		{"empty selection", `{ }`},
		{"unknown operation", `{ pancakes }`},
		{"mutation not supported", `mutation { addRecipe(title: "x") }`},
		{"recipe without args", `{ recipe }`},
		{"recipe wrong arg name", `{ recipe(name: "Pancakes") }`},
		{"recipe unterminated string", `{ recipe(title: "Pancakes) }`},
		{"recipe missing colon", `{ recipe(title "Pancakes") }`},
		{"recipe unclosed args", `{ recipe(title: "Pancakes" }`},
		{"recipe non-string title", `{ recipe(title: 42) }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.query)
			assert.Error(t, err)
		})
	}
}
