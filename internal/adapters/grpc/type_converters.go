package grpc

import (
	"time"

	"github.com/shopspring/decimal"

	appProduction "github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/application/production/queries"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
	"github.com/andrescamacho/domnus-go/internal/domain/projects"
	"github.com/andrescamacho/domnus-go/internal/domain/spending"
)

// TimeLayout is how instants are written in responses
const TimeLayout = "2006-01-02T15:04:05.999999-07:00"

// Document is a JSON-shaped map accepted by structpb.NewStruct
type Document = map[string]interface{}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func inventoryDoc(inv kingdom.Inventory) Document {
	out := make(Document, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

func floatsDoc(m map[string]float64) Document {
	out := make(Document, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func intsDoc(m map[string]int) Document {
	out := make(Document, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// projectionDoc flattens a projection to current plus one entry per horizon label
func projectionDoc(p projection.Projection) Document {
	out := Document{"current": inventoryDoc(p.Current)}
	for _, label := range p.Labels {
		out[label] = inventoryDoc(p.Horizons[label])
	}
	return out
}

// amountProjectionDoc reduces a single-quantity projection to one number per bucket
func amountProjectionDoc(p projection.Projection) Document {
	out := Document{}
	for _, label := range p.Labels {
		out[label] = p.Horizons[label].Get(kingdom.AmountKind)
	}
	return out
}

func unitsDescDoc(units map[string]catalog.UnitDef) Document {
	out := make(Document, len(units))
	for kind, u := range units {
		out[kind] = Document{
			"offense":         u.Offense,
			"defense":         u.Defense,
			"cost":            u.Cost,
			"fuel":            u.Fuel,
			"hangar_capacity": u.HangarCapacity,
		}
	}
	return out
}

func missilesDescDoc(missiles map[string]catalog.MissileDef) Document {
	out := make(Document, len(missiles))
	for kind, m := range missiles {
		out[kind] = Document{
			"stars_damage": m.StarsDamage,
			"fuel_damage":  m.FuelDamage,
			"pop_damage":   m.PopDamage,
			"fuel_cost":    m.FuelCost,
			"cost":         m.Cost,
		}
	}
	return out
}

func mobilizationDoc(r *queries.GetMobilizationResponse) Document {
	o := r.Overview
	units := Document{}
	for _, label := range o.Units.Labels {
		units[label] = inventoryDoc(o.Units.Buckets[label])
	}
	return Document{
		"reference_time":             formatTime(r.ReferenceTime),
		"money":                      money(r.Money),
		"units":                      units,
		"maxes":                      Document{"offense": intsDoc(o.Maxes.Offense), "defense": intsDoc(o.Maxes.Defense)},
		"recruit_price":              o.RecruitPrice,
		"max_hangar_capacity":        o.Hangar.Max,
		"current_hangar_capacity":    o.Hangar.Used,
		"max_available_recruits":     o.Recruits.Max,
		"current_available_recruits": o.Recruits.Current,
		"units_desc":                 unitsDescDoc(o.UnitsDesc),
	}
}

func structuresDoc(r *queries.GetStructuresResponse) Document {
	o := r.Overview
	doc := projectionDoc(o.Projection)
	doc["reference_time"] = formatTime(r.ReferenceTime)
	doc["price"] = o.Price
	doc["max_available_structures"] = o.Availability.Max
	doc["current_available_structures"] = o.Availability.Current
	return doc
}

func missilesDoc(r *queries.GetMissilesResponse) Document {
	o := r.Overview
	available := make(Document, len(o.Available))
	for kind, a := range o.Available {
		available[kind] = availabilityDoc(a)
	}
	return Document{
		"reference_time": formatTime(r.ReferenceTime),
		"current":        inventoryDoc(o.Current),
		"building":       inventoryDoc(o.Building),
		"build_time":     int(o.BuildTime / time.Second),
		"capacity":       o.Capacity,
		"available":      available,
		"desc":           missilesDescDoc(o.Desc),
	}
}

func engineersDoc(r *queries.GetEngineersResponse) Document {
	o := r.Overview
	return Document{
		"reference_time":              formatTime(r.ReferenceTime),
		"engineers_price":             o.Price,
		"max_workshop_capacity":       o.Workshop.Max,
		"current_workshop_capacity":   o.Workshop.Used,
		"max_available_engineers":     o.Availability.Max,
		"current_available_engineers": o.Availability.Current,
		"current_engineers":           o.Current,
		"engineers_building":          o.Building,
		"building":                    amountProjectionDoc(o.Projection),
	}
}

func settlementDoc(r *queries.GetSettlementResponse) Document {
	o := r.Overview
	return Document{
		"reference_time":           formatTime(r.ReferenceTime),
		"settle_price":             o.Price,
		"max_available_settle":     o.Availability.Max,
		"current_available_settle": o.Availability.Current,
		"settling":                 amountProjectionDoc(o.Projection),
	}
}

func projectsDoc(o projects.Overview) Document {
	return Document{
		"current_bonuses":     floatsDoc(o.CurrentBonuses),
		"max_bonuses":         floatsDoc(o.MaxBonuses),
		"points":              inventoryDoc(o.Points),
		"max_points":          inventoryDoc(o.MaxPoints),
		"assigned":            inventoryDoc(o.Assigned),
		"available_engineers": o.AvailableEngineers,
	}
}

func spendingDoc(a spending.Allocation) Document {
	return floatsDoc(a)
}

func availabilityDoc(a production.Availability) Document {
	return Document{"max": a.Max, "current": a.Current}
}

func commitDoc(r *appProduction.CommitResult) Document {
	return Document{
		"kingdom_id":      r.KingdomID.Value(),
		"category":        string(r.Category),
		"queue":           r.Queue.String(),
		"cost":            money(r.Cost),
		"fuel_cost":       money(r.FuelCost),
		"order":           inventoryDoc(r.Payload),
		"completion_time": formatTime(r.CompletionTime),
		"request_id":      r.RequestID,
		"replayed":        r.Replayed,
	}
}
