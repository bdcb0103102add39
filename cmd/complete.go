package cmd

import (
	"strconv"

	"github.com/etnz/moredecimal"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"book":    predict.Files("*.jsonl"),
			"store":   predict.Files("*.db"),
			"journal": predict.Files("*"),
			"v":       nil,
			"raw":     nil,
		},
		Sub: map[string]*complete.Command{
			"securities": {},
			"change-decimals": {
				Flags: map[string]complete.Predictor{
					"s": complete.PredictFunc(predictTickers),
					"d": predict.Set(decimalChoices()),
					"n": nil,
				},
			},
			"recover": {},
			"fmt": {
				Flags: map[string]complete.Predictor{"o": predict.Files("*.jsonl")},
			},
			"import": {},
			"export": {},
			"topic":  {Args: complete.PredictFunc(predictTopics)},
			"help":   {},
		},
	}
}

// predictTickers suggests the tickers of the book file named by the
// environment, since flags are not parsed during completion.
func predictTickers(prefix string) []string {
	b, err := moredecimal.LoadBook(envOr(EnvBookFile, "book.jsonl"))
	if err != nil {
		return nil
	}
	var tickers []string
	for sec := range b.AllSecurities() {
		tickers = append(tickers, sec.Ticker())
	}
	return tickers
}

func decimalChoices() []string {
	choices := make([]string, 0, 9)
	for i := range 9 {
		choices = append(choices, strconv.Itoa(i))
	}
	return choices
}
