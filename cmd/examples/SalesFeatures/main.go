package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"salesfeat/pkg/dataprep"
	"salesfeat/pkg/frame"
	"salesfeat/pkg/pipeline"
	"salesfeat/pkg/stats"
)

// generateSales creates sale events for nShops shops and nItems items over
// nMonths months. Each item has a base popularity and a yearly cycle; a shop
// only stocks a random subset of items each month.
func generateSales(rng *rand.Rand, nShops, nItems, nMonths int) []dataprep.Transaction {
	popularity := make([]float64, nItems)
	for i := range popularity {
		popularity[i] = rng.ExpFloat64() * 2
	}
	var out []dataprep.Transaction
	for m := 0; m < nMonths; m++ {
		season := 1 + 0.5*float64((m%12)/6)
		for s := 0; s < nShops; s++ {
			for it := 0; it < nItems; it++ {
				if rng.Float64() > 0.3 {
					continue
				}
				days := 1 + rng.Intn(5)
				for d := 0; d < days; d++ {
					cnt := float64(rng.Intn(int(popularity[it]*season)+1) + 1)
					if rng.Float64() < 0.02 {
						cnt = -1 // return
					}
					out = append(out, dataprep.Transaction{ShopID: s, ItemID: it, Month: m, Count: cnt})
				}
			}
		}
	}
	return out
}

// plotMonthlyTotals draws the summed grid target per month.
func plotMonthlyTotals(grid *frame.Frame, filename string) error {
	g, err := grid.GroupBy(dataprep.MonthCol)
	if err != nil {
		return err
	}
	totals, err := g.Aggregate(dataprep.TargetCol, frame.AggSpec{Name: "total", Fn: stats.Sum})
	if err != nil {
		return err
	}
	months, _ := totals.Col(dataprep.MonthCol)
	sums, _ := totals.Col("total")

	p := plot.New()
	p.Title.Text = "Monthly sales"
	p.X.Label.Text = "date_block_num"
	p.Y.Label.Text = "items sold"

	pts := make(plotter.XYs, len(months))
	for i := range months {
		pts[i].X = months[i]
		pts[i].Y = sums[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
	l.LineStyle.Width = vg.Points(2)

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.Color = color.RGBA{R: 255, A: 255}
	s.Shape = draw.CircleGlyph{}
	s.Radius = vg.Points(3)

	p.Add(l, s)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

func main() {
	configPath := flag.String("config", "", "Path to a pipeline config file (defaults are used when empty)")
	nShops := flag.Int("shops", 5, "Number of shops")
	nItems := flag.Int("items", 40, "Number of items")
	nMonths := flag.Int("months", 16, "Number of months")
	seed := flag.Int64("seed", 42, "Random seed")
	preview := flag.Int("preview", 5, "Holdout rows to print")
	plotPath := flag.String("plot", "monthly_sales.png", "Where to save the monthly sales plot (empty to skip)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	// the synthetic series is shorter than the real one
	cfg.HoldoutMonth = *nMonths - 1
	cfg.LagMonths = []int{1, 2, 3}

	rng := rand.New(rand.NewSource(*seed))
	sales := generateSales(rng, *nShops, *nItems, *nMonths)
	sales = dataprep.DropDuplicateTransactions(sales)
	fmt.Printf("Generated %d transactions for %d shops, %d items, %d months.\n", len(sales), *nShops, *nItems, *nMonths)

	res, err := pipeline.New(cfg, logger).Build(context.Background(), sales)
	if err != nil {
		logger.Fatal("build features", zap.Error(err))
	}
	fmt.Printf("Train: %d rows, holdout: %d rows, %d columns.\n", res.Train.Len(), res.Holdout.Len(), len(res.Train.Names()))

	n := *preview
	if n > res.Holdout.Len() {
		n = res.Holdout.Len()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	fmt.Println(res.Holdout.Take(idx).ToDataFrame())

	if *plotPath != "" {
		grid, err := dataprep.BuildGrid(sales)
		if err != nil {
			logger.Fatal("build grid", zap.Error(err))
		}
		if err := plotMonthlyTotals(grid, *plotPath); err != nil {
			logger.Fatal("plot", zap.Error(err))
		}
		fmt.Println("Monthly sales plot saved to:", *plotPath)
	}
}
