package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/projection"
	"github.com/andrescamacho/domnus-go/internal/domain/spending"
)

// horizonLabels are the bucket labels the service emits, nearest first
var horizonLabels = func() []string {
	labels := make([]string, 0, len(projection.DefaultHorizons))
	for _, h := range projection.DefaultHorizons {
		labels = append(labels, h.Label)
	}
	return labels
}()

func itoa(v interface{}) string {
	return strconv.Itoa(asInt(v))
}

// percent renders a 0..1 fraction
func percent(v interface{}) string {
	return strconv.FormatFloat(asFloat(v)*100, 'f', 1, 64) + "%"
}

// renderKeyValues prints label/value pairs in a two-column table
func renderKeyValues(w io.Writer, rows [][]string) {
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Field", "Value"}))
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()
}

// renderProjection prints one row per kind with its current count and
// the amount landing in each horizon bucket
func renderProjection(w io.Writer, doc grpcAdapter.Document) {
	current := asDoc(doc["current"])
	header := append([]string{"Kind", "Current"}, horizonLabels...)
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))
	for _, kind := range sortedKeys(current) {
		row := []string{kind, itoa(current[kind])}
		for _, label := range horizonLabels {
			row = append(row, itoa(asDoc(doc[label])[kind]))
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

// renderBuckets prints a single-quantity projection, one column per horizon
func renderBuckets(w io.Writer, title string, buckets grpcAdapter.Document) {
	header := []string{title}
	row := []string{"in progress"}
	for _, label := range horizonLabels {
		header = append(header, label)
		row = append(row, itoa(buckets[label]))
	}
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))
	_ = table.Append(row)
	_ = table.Render()
}

// renderOverview dispatches on the overview category
func renderOverview(w io.Writer, category string, doc grpcAdapter.Document) error {
	headerColor.Fprintf(w, "%s overview\n", category)
	if ref, ok := doc["reference_time"]; ok {
		fmt.Fprintf(w, "As of %s UTC\n\n", formatTimestamp(ref))
	}

	switch category {
	case grpcAdapter.OverviewMobilization:
		renderMobilization(w, doc)
	case grpcAdapter.OverviewStructures:
		renderProjection(w, doc)
		renderKeyValues(w, [][]string{
			{"Price", itoa(doc["price"])},
			{"Available", fmt.Sprintf("%s / %s", itoa(doc["current_available_structures"]), itoa(doc["max_available_structures"]))},
		})
	case grpcAdapter.OverviewMissiles:
		renderMissiles(w, doc)
	case grpcAdapter.OverviewEngineers:
		renderBuckets(w, "Engineers", asDoc(doc["building"]))
		renderKeyValues(w, [][]string{
			{"Price", itoa(doc["engineers_price"])},
			{"Engineers", itoa(doc["current_engineers"])},
			{"Training", itoa(doc["engineers_building"])},
			{"Workshop", fmt.Sprintf("%s / %s", itoa(doc["current_workshop_capacity"]), itoa(doc["max_workshop_capacity"]))},
			{"Available", fmt.Sprintf("%s / %s", itoa(doc["current_available_engineers"]), itoa(doc["max_available_engineers"]))},
		})
	case grpcAdapter.OverviewSettlement:
		renderBuckets(w, "Settling", asDoc(doc["settling"]))
		renderKeyValues(w, [][]string{
			{"Price", itoa(doc["settle_price"])},
			{"Available", fmt.Sprintf("%s / %s", itoa(doc["current_available_settle"]), itoa(doc["max_available_settle"]))},
		})
	case grpcAdapter.OverviewProjects:
		renderProjects(w, doc)
	case grpcAdapter.OverviewSpending:
		renderSpending(w, doc)
	default:
		return printJSON(w, doc)
	}
	return nil
}

func renderMobilization(w io.Writer, doc grpcAdapter.Document) {
	units := asDoc(doc["units"])
	desc := asDoc(doc["units_desc"])
	maxes := asDoc(doc["maxes"])
	offense := asDoc(maxes["offense"])
	defense := asDoc(maxes["defense"])

	// Buckets in display order: home, each general, the total, then horizons
	labels := []string{production.BucketCurrent}
	for i := 0; ; i++ {
		if _, ok := units[production.GeneralLabel(i)]; !ok {
			break
		}
		labels = append(labels, production.GeneralLabel(i))
	}
	labels = append(labels, production.BucketCurrentTotal)
	labels = append(labels, horizonLabels...)

	header := append([]string{"Unit", "Cost"}, labels...)
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))
	for _, kind := range sortedKeys(asDoc(units[production.BucketCurrent])) {
		row := []string{kind, itoa(asDoc(desc[kind])["cost"])}
		for _, label := range labels {
			row = append(row, itoa(asDoc(units[label])[kind]))
		}
		_ = table.Append(row)
	}
	offenseRow := []string{"offense", ""}
	defenseRow := []string{"defense", ""}
	for _, label := range labels {
		offenseRow = append(offenseRow, itoa(offense[label]))
		defenseRow = append(defenseRow, itoa(defense[label]))
	}
	_ = table.Append(offenseRow)
	_ = table.Append(defenseRow)
	_ = table.Render()

	renderKeyValues(w, [][]string{
		{"Money", strconv.FormatFloat(asFloat(doc["money"]), 'f', -1, 64)},
		{"Recruit price", itoa(doc["recruit_price"])},
		{"Hangar", fmt.Sprintf("%s / %s", itoa(doc["current_hangar_capacity"]), itoa(doc["max_hangar_capacity"]))},
		{"Recruits available", fmt.Sprintf("%s / %s", itoa(doc["current_available_recruits"]), itoa(doc["max_available_recruits"]))},
	})
}

func renderMissiles(w io.Writer, doc grpcAdapter.Document) {
	current := asDoc(doc["current"])
	building := asDoc(doc["building"])
	available := asDoc(doc["available"])
	desc := asDoc(doc["desc"])

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Missile", "Current", "Building", "Available", "Cost", "Fuel Cost"}),
	)
	for _, kind := range sortedKeys(desc) {
		a := asDoc(available[kind])
		_ = table.Append([]string{
			kind,
			itoa(current[kind]),
			itoa(building[kind]),
			fmt.Sprintf("%s / %s", itoa(a["current"]), itoa(a["max"])),
			itoa(asDoc(desc[kind])["cost"]),
			itoa(asDoc(desc[kind])["fuel_cost"]),
		})
	}
	_ = table.Render()

	renderKeyValues(w, [][]string{
		{"Silo capacity", itoa(doc["capacity"])},
		{"Build time", fmt.Sprintf("%ss", itoa(doc["build_time"]))},
	})
}

func renderProjects(w io.Writer, doc grpcAdapter.Document) {
	points := asDoc(doc["points"])
	maxPoints := asDoc(doc["max_points"])
	assigned := asDoc(doc["assigned"])
	current := asDoc(doc["current_bonuses"])
	maxBonuses := asDoc(doc["max_bonuses"])

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Project", "Points", "Max Points", "Assigned", "Bonus", "Max Bonus"}),
	)
	for _, kind := range sortedKeys(maxPoints) {
		_ = table.Append([]string{
			kind,
			itoa(points[kind]),
			itoa(maxPoints[kind]),
			itoa(assigned[kind]),
			percent(current[kind]),
			percent(maxBonuses[kind]),
		})
	}
	_ = table.Render()

	fmt.Fprintf(w, "Available engineers: %s\n", itoa(doc["available_engineers"]))
}

func renderSpending(w io.Writer, doc grpcAdapter.Document) {
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Budget", "Share"}))
	total := 0.0
	for _, key := range spending.Keys() {
		share := asFloat(doc[key])
		total += share
		_ = table.Append([]string{key, strconv.FormatFloat(share, 'f', -1, 64) + "%"})
	}
	_ = table.Append([]string{"total", strconv.FormatFloat(total, 'f', -1, 64) + "%"})
	_ = table.Render()
}

// renderCommit prints an accepted order
func renderCommit(w io.Writer, doc grpcAdapter.Document) {
	if replayed, _ := doc["replayed"].(bool); replayed {
		warnColor.Fprintln(w, "! Order already committed under this request id; showing the original result")
	} else {
		successColor.Fprintln(w, "✓ Order placed")
	}

	rows := [][]string{
		{"Kingdom", itoa(doc["kingdom_id"])},
		{"Category", fmt.Sprint(doc["category"])},
		{"Queue", fmt.Sprint(doc["queue"])},
		{"Cost", strconv.FormatFloat(asFloat(doc["cost"]), 'f', -1, 64)},
	}
	if fuel := asFloat(doc["fuel_cost"]); fuel > 0 {
		rows = append(rows, []string{"Fuel cost", strconv.FormatFloat(fuel, 'f', -1, 64)})
	}
	order := asDoc(doc["order"])
	for _, kind := range sortedKeys(order) {
		rows = append(rows, []string{"  " + kind, itoa(order[kind])})
	}
	rows = append(rows,
		[]string{"Completes", formatTimestamp(doc["completion_time"]) + " UTC"},
		[]string{"Request ID", fmt.Sprint(doc["request_id"])},
	)
	renderKeyValues(w, rows)
}
