package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"jerseystore/internal/domain"
)

var std = []string{"S", "M", "L", "XL"}

func even(n int) map[string]int {
	return map[string]int{"S": n, "M": n, "L": n, "XL": n}
}

// SeedProducts is the fixed catalog installed by SeedCatalog.
var SeedProducts = []domain.Product{
	// Football
	{ID: "man-city-home-2324", Name: "Manchester City Home 23/24", Team: "Man City FC", Price: 1999, Image: "/images/mancity.png", Sizes: std, Stock: map[string]int{"S": 5, "M": 0, "L": 20, "XL": 20}, Description: "Official Manchester City Home Jersey.", Category: "Football"},
	{ID: "real-madrid", Name: "Real Madrid", Team: "Real Madrid FC", Price: 2499, Image: "/images/realmadrid.png", Sizes: std, Stock: even(10), Description: "Official Real Madrid Jersey.", Category: "Football"},
	{ID: "fc-barcelona-home", Name: "FC Barcelona Home", Team: "FC Barcelona", Price: 2299, Image: "/images/barcelona.png", Sizes: std, Stock: even(10), Description: "Official FC Barcelona Home Kit.", Category: "Football"},
	{ID: "liverpool-fc", Name: "Liverpool FC", Team: "Liverpool FC", Price: 1499, Image: "/images/Liverpool.png", Sizes: std, Stock: even(10), Description: "Official Liverpool FC Jersey.", Category: "Football"},
	{ID: "argentina", Name: "Argentina", Team: "Argentina FC", Price: 1999, Image: "/images/ARGENTINA.png", Sizes: std, Stock: even(10), Description: "Official Argentina Home Jersey.", Category: "Football"},
	{ID: "brazil", Name: "Brazil", Team: "Brazil FC", Price: 1999, Image: "/images/BRAZIL.png", Sizes: std, Stock: even(10), Description: "Official Brazil Jersey.", Category: "Football"},
	{ID: "spurs", Name: "Spurs", Team: "Spurs FC", Price: 1999, Image: "/images/spurs.png", Sizes: std, Stock: even(10), Description: "Official Spurs Home Jersey.", Category: "Football"},
	{ID: "india-football", Name: "India", Team: "India FC", Price: 1499, Image: "/images/INDIANFB.png", Sizes: std, Stock: even(20), Description: "Official India Jersey.", Category: "Football"},

	// Basketball
	{ID: "lakers-icon", Name: "Lakers Icon Edition", Team: "Lakers", Price: 2999, Image: "/images/Lakersicon.png", Sizes: std, Stock: map[string]int{"S": 2, "M": 20, "L": 20, "XL": 20}, Description: "Icon Edition Lakers Jersey.", Category: "Basketball"},
	{ID: "miami-heat-city", Name: "Miami Heat City Edition", Team: "Miami Heat", Price: 2299, Image: "/images/miami.png", Sizes: []string{"S", "M", "L", "XXL"}, Stock: map[string]int{"S": 5, "M": 5, "L": 0, "XL": 5, "XXL": 5}, Description: "Miami Heat City Edition Jersey.", Category: "Basketball"},
	{ID: "chicago-bulls", Name: "Chicago Bulls", Team: "Chicago Bulls", Price: 1999, Image: "/images/Chicago.png", Sizes: std, Stock: even(10), Description: "Official Chicago Bulls Jersey.", Category: "Basketball"},
	{ID: "golden-state-warriors", Name: "Golden State Warriors", Team: "Golden State Warriors", Price: 2999, Image: "/images/warriors.png", Sizes: std, Stock: even(10), Description: "Official GSW Jersey.", Category: "Basketball"},
	{ID: "boston-celtics", Name: "Boston Celtics", Team: "Boston Celtics", Price: 2499, Image: "/images/Celtics.png", Sizes: std, Stock: even(10), Description: "Official Boston Celtics Jersey.", Category: "Basketball"},

	// Cricket
	{ID: "delhi-capitals", Name: "Delhi Capitals", Team: "Delhi Capitals", Price: 1499, Image: "/images/DC.png", Sizes: std, Stock: even(10), Description: "Official Delhi Capitals Jersey.", Category: "Cricket"},
	{ID: "kolkata-knight-riders", Name: "Kolkata Knight Riders", Team: "Kolkata Knight Riders", Price: 1499, Image: "/images/KKR.png", Sizes: std, Stock: even(10), Description: "Official KKR Jersey.", Category: "Cricket"},
	{ID: "mumbai-indians", Name: "Mumbai Indians", Team: "Mumbai Indians", Price: 1499, Image: "/images/MI.png", Sizes: std, Stock: even(10), Description: "Official Mumbai Indians Jersey.", Category: "Cricket"},
	{ID: "royal-challengers-bangalore", Name: "Royal Challengers Bangalore", Team: "Royal Challengers Bangalore", Price: 1499, Image: "/images/RCB.png", Sizes: std, Stock: even(10), Description: "Official RCB Jersey.", Category: "Cricket"},
	{ID: "sunrisers-hyderabad", Name: "SunRisers Hyderabad", Team: "SunRisers Hyderabad", Price: 1299, Image: "/images/SRH.png", Sizes: std, Stock: even(10), Description: "Official SRH Jersey.", Category: "Cricket"},
	{ID: "chennai-super-kings", Name: "Chennai Super Kings", Team: "Chennai Super Kings", Price: 1599, Image: "/images/CSK.png", Sizes: std, Stock: even(10), Description: "Official CSK Jersey.", Category: "Cricket"},
	{ID: "indian-cricket-team", Name: "Indian Cricket Team", Team: "Indian Cricket Team", Price: 1999, Image: "/images/indiancricket.png", Sizes: std, Stock: map[string]int{"S": 5, "M": 0, "L": 5, "XL": 5}, Description: "Official Indian Cricket T20 Team Jersey.", Category: "Cricket"},
}

// SeedCatalog wipes the catalog (sizes, stock and reviews cascade) and inserts
// SeedProducts. Orders are left alone; their lines are snapshots.
func SeedCatalog(ctx context.Context, tx *sqlx.Tx) error {
	prods := (&ProductRepo{}).WithTx(tx)
	if err := prods.DeleteAll(ctx); err != nil {
		return err
	}
	for _, p := range SeedProducts {
		if err := prods.Insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
