package domain

// DashboardSummary reúne os indicadores exibidos no painel de vendas
type DashboardSummary struct {
	Dataset      *Dataset          `json:"dataset,omitempty"`
	Records      []SalesRecord     `json:"records"`
	TotalRevenue float64           `json:"total_revenue"`
	AverageYoY   float64           `json:"average_yoy"`
	BestMonth    *MonthValue       `json:"best_month"`
	WorstMonth   *MonthValue       `json:"worst_month"`
	AnnualGoal   float64           `json:"annual_goal"`
	Goal         *GoalProgress     `json:"goal,omitempty"`
	Trend        []TrendPoint      `json:"trend"`
	YoY          []YoYPoint        `json:"yoy"`
	Cumulative   []CumulativePoint `json:"cumulative"`
}

// MonthValue é o mês de maior ou menor receita
type MonthValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// GoalProgress é a razão entre a receita total e a meta anual, limitada a [0, 1]
type GoalProgress struct {
	Ratio   float64 `json:"ratio"`
	Percent float64 `json:"percent"`
}

// TrendPoint alimenta o gráfico de tendência com a média móvel de 3 meses
type TrendPoint struct {
	Month        string `json:"month"`
	Revenue      Amount `json:"revenue"`
	RollingAvg3M Amount `json:"rolling_avg_3m"`
}

// YoYPoint alimenta o gráfico de variação em relação ao mesmo mês do ano anterior
type YoYPoint struct {
	Month    string `json:"month"`
	Change   Amount `json:"change"`
	Negative bool   `json:"negative"`
}

// CumulativePoint é a receita acumulada até o mês
type CumulativePoint struct {
	Month   string `json:"month"`
	Revenue Amount `json:"revenue"`
}
