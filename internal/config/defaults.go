package config

import (
	"github.com/iwvelando/cost-of-living/internal/aggregate"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/dataset"
)

const (
	elecLAPath = "household_goods_services_etc/electricity/avg_elec_price_LA_LB_ANHM.csv"
	gasLAPath  = "household_goods_services_etc/gas/avg_price_gas_LA_LB_ANHM_reg.csv"
)

// DefaultCounties returns the Los Angeles, Orange and Ventura source layout.
// FRED publishes electricity and gas prices only for the Los Angeles-Long
// Beach-Anaheim area, so Orange and Ventura reuse those two series.
func DefaultCounties() []aggregate.County {
	elecLA := dataset.Source{Title: "Electricity Price - LA", Path: elecLAPath}
	gasLA := dataset.Source{Title: "Gas Price - LA", Path: gasLAPath}

	return []aggregate.County{
		{
			ID:          constants.CountyLA,
			Label:       "Los Angeles County",
			Income:      dataset.Source{Title: "Median Income - Los Angeles County", Path: "median_income/median_income_LA_county.csv"},
			Listing:     dataset.Source{Title: "House Listing Price - Los Angeles County", Path: "housing/avg_house_listing_price_LA_county.csv"},
			Electricity: elecLA,
			Gas:         gasLA,
		},
		{
			ID:          constants.CountyOC,
			Label:       "Orange County",
			Income:      dataset.Source{Title: "Median Income - Orange County", Path: "median_income/median_income_OC.csv"},
			Listing:     dataset.Source{Title: "House Listing Price - Orange County", Path: "housing/avg_house_listing_price_OC.csv"},
			Electricity: elecLA,
			Gas:         gasLA,
		},
		{
			ID:          constants.CountyVentura,
			Label:       "Ventura County",
			Income:      dataset.Source{Title: "Median Income - Ventura County", Path: "median_income/median_income_ventura_county.csv"},
			Listing:     dataset.Source{Title: "House Listing Price - Ventura County", Path: "housing/avg_housing_listing_ventura_county.csv"},
			Electricity: elecLA,
			Gas:         gasLA,
		},
	}
}

// DefaultHealthcare returns the hospital billing source. Its discharge date and
// billing amount columns are renamed into the canonical schema on load.
func DefaultHealthcare() dataset.Source {
	return dataset.Source{
		Title: "Healthcare Dataset",
		Path:  "household_goods_services_etc/healthcare/healthcare_dataset.csv",
		Renames: map[string]string{
			"Discharge Date": constants.DateColumn,
			"Billing Amount": constants.ColumnHealthcareCost,
		},
	}
}
