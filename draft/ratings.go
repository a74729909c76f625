package draft

import (
	"encoding/json"
	"strconv"

	"github.com/danielhkuo/sponsor-eval/rubric"
)

// Ratings holds one score per criterion; nil means never chosen.
type Ratings [rubric.Size]*int

// Score returns a pointer to v
func Score(v int) *int {
	return &v
}

// Chosen reports whether any criterion has a score
func (r Ratings) Chosen() bool {
	for _, v := range r {
		if v != nil {
			return true
		}
	}
	return false
}

func (r Ratings) clone() Ratings {
	var out Ratings
	for i, v := range r {
		if v != nil {
			out[i] = Score(*v)
		}
	}
	return out
}

// MarshalJSON writes {"0": score|null, ...} for every criterion
func (r Ratings) MarshalJSON() ([]byte, error) {
	m := make(map[string]*int, rubric.Size)
	for i, v := range r {
		m[strconv.Itoa(i)] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the object form. Unknown criteria and values off the
// 1..7 scale are dropped.
func (r *Ratings) UnmarshalJSON(data []byte) error {
	var m map[string]*float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var out Ratings
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil || !rubric.ValidIndex(i) || v == nil {
			continue
		}
		score := int(*v)
		if float64(score) != *v || !rubric.ValidScore(score) {
			continue
		}
		out[i] = Score(score)
	}
	*r = out
	return nil
}
