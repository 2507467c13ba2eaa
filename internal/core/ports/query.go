package ports

import (
	"net/url"
	"strconv"
)

// Values renders the input as query parameters. The encoding doubles as
// the cache-key discriminator for list queries, so it must stay stable:
// url.Values.Encode sorts keys, and zero-valued filters are omitted.
func (in ListLeadsInput) Values() url.Values {
	q := url.Values{}
	setStr(q, "status", in.Status)
	setStr(q, "source", in.Source)
	setStr(q, "assignedTo", in.AssignedTo)
	setStr(q, "search", in.Search)
	setInt(q, "page", in.Page)
	setInt(q, "limit", in.Limit)
	return q
}

// Values renders the input as query parameters. See ListLeadsInput.Values.
func (in ListProjectsInput) Values() url.Values {
	q := url.Values{}
	setStr(q, "status", in.Status)
	setStr(q, "search", in.Search)
	setInt(q, "page", in.Page)
	setInt(q, "limit", in.Limit)
	return q
}

// Values renders the input as query parameters. See ListLeadsInput.Values.
func (in ListUnitsInput) Values() url.Values {
	q := url.Values{}
	setStr(q, "projectId", in.ProjectID)
	setStr(q, "type", in.Type)
	setStr(q, "status", in.Status)
	setFloat(q, "minPrice", in.MinPrice)
	setFloat(q, "maxPrice", in.MaxPrice)
	setStr(q, "search", in.Search)
	setInt(q, "page", in.Page)
	setInt(q, "limit", in.Limit)
	return q
}

// Values renders the input as query parameters. See ListLeadsInput.Values.
func (in ListBookingsInput) Values() url.Values {
	q := url.Values{}
	setStr(q, "status", in.Status)
	setStr(q, "search", in.Search)
	setInt(q, "page", in.Page)
	setInt(q, "limit", in.Limit)
	return q
}

func setStr(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setFloat(q url.Values, key string, v float64) {
	if v > 0 {
		q.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
	}
}
