package services

import (
	"math"
	"sort"

	"github.com/ophthalmoai/saas-backend/internal/reporting/models"
)

// round1 keeps percentages at one decimal, matching the dashboard display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// rate returns converted/total as a percentage, 0 when total is 0.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

// ComputeDashboard aggregates the KPI panel from the filtered patient set.
// Pure: same facts in, same numbers out.
func ComputeDashboard(facts []models.PatientFact) models.DashboardData {
	var d models.DashboardData
	byProcedure := map[string]*models.CategoryStat{}

	for _, f := range facts {
		d.Total++
		stat, ok := byProcedure[f.Procedure]
		if !ok {
			stat = &models.CategoryStat{Procedure: f.Procedure}
			byProcedure[f.Procedure] = stat
		}
		stat.Total++
		if f.Status == "Converted" {
			d.Converted++
			d.RevenueDone += f.Cost
			stat.Converted++
		} else {
			d.Pending++
			d.RevenuePending += f.Cost
			stat.Pending++
		}
	}
	d.ConversionRate = rate(d.Converted, d.Total)

	// Top performing category: highest patient count, name breaks ties.
	var top *models.CategoryStat
	for _, stat := range byProcedure {
		if top == nil || stat.Total > top.Total || (stat.Total == top.Total && stat.Procedure < top.Procedure) {
			top = stat
		}
	}
	if top != nil {
		t := *top
		t.Rate = rate(t.Converted, t.Total)
		d.TopCategory = &t
	}

	// Needs attention: highest pending count, rate is the pending share of
	// that procedure's own population.
	var worst *models.CategoryStat
	for _, stat := range byProcedure {
		if stat.Pending == 0 {
			continue
		}
		if worst == nil || stat.Pending > worst.Pending || (stat.Pending == worst.Pending && stat.Procedure < worst.Procedure) {
			worst = stat
		}
	}
	if worst != nil {
		w := *worst
		w.Rate = rate(w.Pending, w.Total)
		d.NeedsAttention = &w
	}

	return d
}

// ComputeRevenue splits cost by status and by procedure×status.
func ComputeRevenue(facts []models.PatientFact) models.RevenueData {
	d := models.RevenueData{ByProcedure: []models.RevenueSlice{}}
	cells := map[[2]string]float64{}

	for _, f := range facts {
		d.TotalAdvised += f.Cost
		if f.Status == "Converted" {
			d.Collected += f.Cost
		} else {
			d.Pending += f.Cost
		}
		cells[[2]string{f.Procedure, f.Status}] += f.Cost
	}

	for key, cost := range cells {
		d.ByProcedure = append(d.ByProcedure, models.RevenueSlice{
			Procedure: key[0],
			Status:    key[1],
			Cost:      cost,
		})
	}
	sort.Slice(d.ByProcedure, func(i, j int) bool {
		a, b := d.ByProcedure[i], d.ByProcedure[j]
		if a.Procedure != b.Procedure {
			return a.Procedure < b.Procedure
		}
		return a.Status < b.Status
	})
	return d
}

// ComputeLeaderboard fills conversion rates and ranks doctors by rate, name
// breaking ties, so the ordering is deterministic.
func ComputeLeaderboard(doctors []models.DoctorStat) models.DoctorLeaderboard {
	for i := range doctors {
		doctors[i].ConversionRate = rate(doctors[i].Converted, doctors[i].TotalCases)
	}
	sort.Slice(doctors, func(i, j int) bool {
		if doctors[i].ConversionRate != doctors[j].ConversionRate {
			return doctors[i].ConversionRate > doctors[j].ConversionRate
		}
		return doctors[i].Doctor < doctors[j].Doctor
	})

	board := models.DoctorLeaderboard{Doctors: doctors}
	if len(doctors) > 0 {
		top := doctors[0]
		board.TopPerformer = &top
	}
	return board
}

// DemographicFact is the projection the demographics view aggregates.
type DemographicFact struct {
	Age    int
	Gender string
	City   string
}

var ageBands = []struct {
	label string
	max   int
}{
	{"0-20", 20},
	{"21-40", 40},
	{"41-60", 60},
	{"61-80", 80},
	{"80+", math.MaxInt32},
}

// AgeBand maps an age to its fixed band label.
func AgeBand(age int) string {
	for _, band := range ageBands {
		if age <= band.max {
			return band.label
		}
	}
	return ageBands[len(ageBands)-1].label
}

// ComputeDemographics bins age into the fixed bands and counts gender and
// city occurrences. Age bands keep their natural order including empty ones;
// gender and city are ordered by count, then label.
func ComputeDemographics(facts []DemographicFact) models.Demographics {
	ageCounts := map[string]int{}
	genderCounts := map[string]int{}
	cityCounts := map[string]int{}

	for _, f := range facts {
		ageCounts[AgeBand(f.Age)]++
		genderCounts[f.Gender]++
		cityCounts[f.City]++
	}

	d := models.Demographics{
		AgeGroups: []models.GroupCount{},
		Genders:   countsByFrequency(genderCounts),
		Cities:    countsByFrequency(cityCounts),
	}
	for _, band := range ageBands {
		d.AgeGroups = append(d.AgeGroups, models.GroupCount{Label: band.label, Count: ageCounts[band.label]})
	}
	return d
}

func countsByFrequency(counts map[string]int) []models.GroupCount {
	result := []models.GroupCount{}
	for label, count := range counts {
		result = append(result, models.GroupCount{Label: label, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}
