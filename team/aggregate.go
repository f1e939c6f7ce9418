package team

// Slice is one category of an aggregate.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Aggregate counts records per distinct value, in first-seen order.
type Aggregate []Slice

func (a Aggregate) Map() map[string]int {
	m := make(map[string]int, len(a))
	for _, s := range a {
		m[s.Label] = s.Count
	}
	return m
}

func (a Aggregate) Total() int {
	n := 0
	for _, s := range a {
		n += s.Count
	}
	return n
}

// CountBy groups users by the value key returns.
func CountBy(users []User, key func(User) string) Aggregate {
	index := make(map[string]int)
	out := make(Aggregate, 0)
	for _, u := range users {
		label := key(u)
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, Slice{Label: label, Count: 1})
	}
	return out
}

func RoleCounts(users []User) Aggregate {
	return CountBy(users, func(u User) string { return string(u.Role) })
}

func StatusCounts(users []User) Aggregate {
	return CountBy(users, func(u User) string { return string(u.Status) })
}
