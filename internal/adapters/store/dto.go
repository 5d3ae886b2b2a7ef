package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// wireTimeFormat is ISO-8601 with an explicit +00:00 offset, which every
// store client (including ones without "Z" support) can parse
const wireTimeFormat = "2006-01-02T15:04:05.999999-07:00"

// naiveTimeFormat covers timestamps written without an offset, e.g. by a
// store that writes local time; they are read in the configured location
const naiveTimeFormat = "2006-01-02T15:04:05.999999999"

type kingdomDTO struct {
	Stars             int                `json:"stars"`
	Population        int                `json:"population"`
	Money             decimal.Decimal    `json:"money"`
	Fuel              decimal.Decimal    `json:"fuel"`
	Structures        map[string]int     `json:"structures"`
	Units             map[string]int     `json:"units"`
	Missiles          map[string]int     `json:"missiles"`
	GeneralsOut       []map[string]int   `json:"generals_out"`
	ProjectsPoints    map[string]int     `json:"projects_points"`
	ProjectsMaxPoints map[string]int     `json:"projects_max_points"`
	ProjectsAssigned  map[string]int     `json:"projects_assigned"`
	AutoSpending      map[string]float64 `json:"auto_spending"`
}

func (d *kingdomDTO) toSnapshot(id shared.KingdomID) *kingdom.Snapshot {
	generals := make([]kingdom.Inventory, len(d.GeneralsOut))
	for i, g := range d.GeneralsOut {
		generals[i] = kingdom.Inventory(g)
	}
	return &kingdom.Snapshot{
		ID:                id,
		Stars:             d.Stars,
		Population:        d.Population,
		Money:             d.Money,
		Fuel:              d.Fuel,
		Structures:        kingdom.Inventory(d.Structures),
		Units:             kingdom.Inventory(d.Units),
		Missiles:          kingdom.Inventory(d.Missiles),
		GeneralsOut:       generals,
		ProjectsPoints:    kingdom.Inventory(d.ProjectsPoints),
		ProjectsMaxPoints: kingdom.Inventory(d.ProjectsMaxPoints),
		ProjectsAssigned:  kingdom.Inventory(d.ProjectsAssigned),
		AutoSpending:      d.AutoSpending,
	}
}

// DecodeKingdom parses a kingdom document in the store's wire format
func DecodeKingdom(raw []byte, id shared.KingdomID) (*kingdom.Snapshot, error) {
	var dto kingdomDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, shared.NewMalformedKingdomDataError("kingdom", err)
	}
	return dto.toSnapshot(id), nil
}

// patchBody renders only the fields a patch sets. Money and fuel go out as
// JSON numbers, not decimal's default quoted strings.
func patchBody(p kingdom.Patch) map[string]interface{} {
	body := make(map[string]interface{})
	if p.Money != nil {
		body["money"] = json.Number(p.Money.String())
	}
	if p.Fuel != nil {
		body["fuel"] = json.Number(p.Fuel.String())
	}
	if p.Units != nil {
		body["units"] = map[string]int(p.Units)
	}
	if p.Structures != nil {
		body["structures"] = map[string]int(p.Structures)
	}
	if p.ProjectsAssigned != nil {
		body["projects_assigned"] = map[string]int(p.ProjectsAssigned)
	}
	if p.AutoSpending != nil {
		body["auto_spending"] = p.AutoSpending
	}
	return body
}

// orderBody renders one queue entry: the completion time plus one key per kind
func orderBody(o kingdom.PendingOrder) map[string]interface{} {
	body := make(map[string]interface{}, len(o.Payload)+1)
	body["time"] = o.Time.UTC().Format(wireTimeFormat)
	for kind, n := range o.Payload {
		body[kind] = n
	}
	return body
}

// decodeQueue parses {"<queue>": [{"time": ..., "<kind>": n}, ...]}. Times
// without an offset are read in naiveLoc.
func decodeQueue(raw []byte, queue kingdom.Queue, naiveLoc *time.Location) ([]kingdom.PendingOrder, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var envelope map[string][]map[string]interface{}
	if err := dec.Decode(&envelope); err != nil {
		return nil, err
	}

	entries := envelope[queue.String()]
	orders := make([]kingdom.PendingOrder, 0, len(entries))
	for i, entry := range entries {
		order, err := decodeOrder(entry, naiveLoc)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		orders = append(orders, order)
	}
	sort.SliceStable(orders, func(a, b int) bool { return orders[a].Time.Before(orders[b].Time) })
	return orders, nil
}

func decodeOrder(entry map[string]interface{}, naiveLoc *time.Location) (kingdom.PendingOrder, error) {
	rawTime, ok := entry["time"].(string)
	if !ok {
		return kingdom.PendingOrder{}, fmt.Errorf("missing time")
	}
	completion, err := parseWireTime(rawTime, naiveLoc)
	if err != nil {
		return kingdom.PendingOrder{}, err
	}

	payload := make(kingdom.Inventory, len(entry)-1)
	for key, value := range entry {
		if key == "time" {
			continue
		}
		num, ok := value.(json.Number)
		if !ok {
			// non-numeric side fields (ids, tags) are not quantities
			continue
		}
		f, err := num.Float64()
		if err != nil {
			return kingdom.PendingOrder{}, fmt.Errorf("%s: %w", key, err)
		}
		payload[key] = int(math.Floor(f))
	}
	return kingdom.PendingOrder{Time: completion, Payload: payload}, nil
}

func parseWireTime(raw string, naiveLoc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(naiveTimeFormat, raw, naiveLoc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", raw, err)
	}
	return t.UTC(), nil
}
