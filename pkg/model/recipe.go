// Package model defines the recipe domain types, the document
// (de)serialization contract, and the application error taxonomy shared
// between the query service and the batch loader.
package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Ingredient is a single ingredient used in a recipe. Qty is free-form
// quantity text; no unit parsing is performed.
type Ingredient struct {
	Name string `json:"name" bson:"name"`
	Qty  string `json:"qty" bson:"qty"`
}

// MediaRef is a reference to some media in the recipe. Anchor is a label,
// typically pointing at an instruction step.
type MediaRef struct {
	Anchor string `json:"anchor" bson:"anchor"`
	URL    string `json:"url" bson:"url"`
}

// Recipe is the typed representation of a stored recipe document.
// Title is the exact-match lookup key; the store does not enforce
// uniqueness. Instructions and Media are order-sensitive.
type Recipe struct {
	Title        string       `json:"title" bson:"title"`
	Ingredients  []Ingredient `json:"ingredients" bson:"ingredients"`
	Instructions []string     `json:"instructions" bson:"instructions"`
	Tags         []string     `json:"tags" bson:"tags"`
	Media        []MediaRef   `json:"media" bson:"media"`
}

// Document encodes the recipe into its generic document representation.
// Encoding is total; nil slices are written as empty arrays so that a
// decode of the result yields a structurally equal Recipe.
func (r Recipe) Document() map[string]interface{} {
	ingredients := make([]interface{}, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, map[string]interface{}{
			"name": ing.Name,
			"qty":  ing.Qty,
		})
	}

	instructions := make([]interface{}, 0, len(r.Instructions))
	for _, step := range r.Instructions {
		instructions = append(instructions, step)
	}

	tags := make([]interface{}, 0, len(r.Tags))
	for _, tag := range r.Tags {
		tags = append(tags, tag)
	}

	media := make([]interface{}, 0, len(r.Media))
	for _, m := range r.Media {
		media = append(media, map[string]interface{}{
			"anchor": m.Anchor,
			"url":    m.URL,
		})
	}

	return map[string]interface{}{
		"title":        r.Title,
		"ingredients":  ingredients,
		"instructions": instructions,
		"tags":         tags,
		"media":        media,
	}
}

// DecodeRecipe decodes a generic document into a Recipe. A missing required
// field or a field with the wrong shape is a deserialization failure. Extra
// fields (such as the store's _id) are ignored. The sequences in the result
// are never nil.
func DecodeRecipe(doc map[string]interface{}) (Recipe, error) {
	var r Recipe

	title, err := stringField(doc, "title")
	if err != nil {
		return Recipe{}, err
	}
	r.Title = title

	rawIngredients, err := arrayField(doc, "ingredients")
	if err != nil {
		return Recipe{}, err
	}
	r.Ingredients = make([]Ingredient, 0, len(rawIngredients))
	for i, item := range rawIngredients {
		sub, ok := asDocument(item)
		if !ok {
			return Recipe{}, fmt.Errorf("decode recipe: ingredients[%d] is not an object", i)
		}
		name, err := stringField(sub, "name")
		if err != nil {
			return Recipe{}, fmt.Errorf("decode recipe: ingredients[%d]: %w", i, err)
		}
		qty, err := stringField(sub, "qty")
		if err != nil {
			return Recipe{}, fmt.Errorf("decode recipe: ingredients[%d]: %w", i, err)
		}
		r.Ingredients = append(r.Ingredients, Ingredient{Name: name, Qty: qty})
	}

	rawInstructions, err := arrayField(doc, "instructions")
	if err != nil {
		return Recipe{}, err
	}
	r.Instructions = make([]string, 0, len(rawInstructions))
	for i, item := range rawInstructions {
		step, ok := item.(string)
		if !ok {
			return Recipe{}, fmt.Errorf("decode recipe: instructions[%d] is not a string", i)
		}
		r.Instructions = append(r.Instructions, step)
	}

	rawTags, err := arrayField(doc, "tags")
	if err != nil {
		return Recipe{}, err
	}
	r.Tags = make([]string, 0, len(rawTags))
	for i, item := range rawTags {
		tag, ok := item.(string)
		if !ok {
			return Recipe{}, fmt.Errorf("decode recipe: tags[%d] is not a string", i)
		}
		r.Tags = append(r.Tags, tag)
	}

	rawMedia, err := arrayField(doc, "media")
	if err != nil {
		return Recipe{}, err
	}
	r.Media = make([]MediaRef, 0, len(rawMedia))
	for i, item := range rawMedia {
		sub, ok := asDocument(item)
		if !ok {
			return Recipe{}, fmt.Errorf("decode recipe: media[%d] is not an object", i)
		}
		anchor, err := stringField(sub, "anchor")
		if err != nil {
			return Recipe{}, fmt.Errorf("decode recipe: media[%d]: %w", i, err)
		}
		url, err := stringField(sub, "url")
		if err != nil {
			return Recipe{}, fmt.Errorf("decode recipe: media[%d]: %w", i, err)
		}
		r.Media = append(r.Media, MediaRef{Anchor: anchor, URL: url})
	}

	return r, nil
}

// asDocument normalizes the two document shapes seen in practice: bson.M
// from the driver and map[string]interface{} from encoding/json.
func asDocument(v interface{}) (map[string]interface{}, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case map[string]interface{}:
		return d, true
	default:
		return nil, false
	}
}

// asArray normalizes bson.A and []interface{}.
func asArray(v interface{}) ([]interface{}, bool) {
	switch a := v.(type) {
	case bson.A:
		return a, true
	case []interface{}:
		return a, true
	default:
		return nil, false
	}
}

func stringField(doc map[string]interface{}, key string) (string, error) {
	v, ok := doc[key]
	if !ok {
		return "", fmt.Errorf("decode recipe: missing required field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("decode recipe: field %q is not a string", key)
	}
	return s, nil
}

func arrayField(doc map[string]interface{}, key string) ([]interface{}, error) {
	v, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("decode recipe: missing required field %q", key)
	}
	a, ok := asArray(v)
	if !ok {
		return nil, fmt.Errorf("decode recipe: field %q is not an array", key)
	}
	return a, nil
}
