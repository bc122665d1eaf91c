package service

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const predictionSearchDepth = 6

var (
	confidenceFields = []string{"confidence", "confidence_score", "probability", "score"}
	wrapperFields    = []string{"outputs", "output", "result", "data"}
	classFields      = []string{"class", "label", "class_name"}
)

// ExtractMaxConfidence finds the prediction list inside a provider payload
// and returns the highest confidence among predictions of category.
// Predictions that carry no class label are taken to be of the requested
// category. ok is false when nothing usable was found.
func ExtractMaxConfidence(payload any, category string) (best float64, ok bool) {
	for _, p := range findPredictions(payload, predictionSearchDepth) {
		obj, isObj := p.(map[string]any)
		if !isObj || !matchesCategory(obj, category) {
			continue
		}
		c, valid := confidenceOf(obj)
		if !valid {
			continue
		}
		if !ok || c > best {
			best, ok = c, true
		}
	}
	return best, ok
}

// findPredictions walks at most depth levels looking for an array of
// prediction objects. Explicit prediction keys win over the usual workflow
// wrappers, which win over any other key.
func findPredictions(node any, depth int) []any {
	if depth <= 0 || node == nil {
		return nil
	}

	switch v := node.(type) {
	case []any:
		if looksLikePredictions(v) {
			return v
		}
		for _, item := range v {
			if found := findPredictions(item, depth-1); len(found) > 0 {
				return found
			}
		}
	case map[string]any:
		if arr, ok := v["predictions"].([]any); ok {
			return arr
		}
		if arr, ok := v["detections"].([]any); ok {
			return arr
		}
		for _, key := range wrapperFields {
			if found := findPredictions(v[key], depth-1); len(found) > 0 {
				return found
			}
		}

		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if isWrapper(k) {
				continue
			}
			if found := findPredictions(v[k], depth-1); len(found) > 0 {
				return found
			}
		}
	}
	return nil
}

func looksLikePredictions(arr []any) bool {
	if len(arr) == 0 {
		return false
	}
	sample, ok := arr[0].(map[string]any)
	if !ok {
		return false
	}
	for _, f := range confidenceFields {
		if _, present := sample[f]; present {
			return true
		}
	}
	return false
}

func isWrapper(key string) bool {
	for _, w := range wrapperFields {
		if key == w {
			return true
		}
	}
	return false
}

// confidenceOf reads the first non-null confidence field. A value that is
// present but not numeric makes the prediction unusable.
func confidenceOf(obj map[string]any) (float64, bool) {
	for _, f := range confidenceFields {
		raw, present := obj[f]
		if !present || raw == nil {
			continue
		}
		return toFiniteNumber(raw)
	}
	return 0, false
}

func toFiniteNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func matchesCategory(obj map[string]any, category string) bool {
	for _, f := range classFields {
		label, ok := obj[f].(string)
		if !ok || strings.TrimSpace(label) == "" {
			continue
		}
		return singular(label) == singular(category)
	}
	return true
}

// singular folds the simple English plurals used in category names
// ("onions", "tomatoes") onto their singular form.
func singular(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(s, "oes"):
		return strings.TrimSuffix(s, "es")
	case strings.HasSuffix(s, "ss"):
		return s
	case strings.HasSuffix(s, "s"):
		return strings.TrimSuffix(s, "s")
	}
	return s
}

// IngredientName turns a category path segment into a display name.
func IngredientName(category string) string {
	s := strings.ReplaceAll(singular(category), "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
