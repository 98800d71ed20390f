package text_test

import (
	"fmt"

	"github.com/walteh/renamerc/pkg/rules"
	"github.com/walteh/renamerc/pkg/text"
)

func ExampleTransform() {
	webrip, _ := rules.New("webrip", "")
	year, _ := rules.New("2020", "")

	fmt.Println(text.Transform("My.Movie-2020_WEBRip.mkv", rules.RuleSet{webrip, year}))
	fmt.Println(text.Transform("home_video-final.mp4", nil))

	// Output:
	// My Movie.mkv
	// home video final.mp4
}

func ExampleTrace() {
	webrip, _ := rules.New("webrip", "")

	res := text.Trace("Show_Name.WEBRip.mkv", rules.RuleSet{webrip})
	for _, step := range res.Steps {
		fmt.Printf("%-10s %q\n", step.Stage, step.Base)
	}
	fmt.Println(res.Name)

	// Output:
	// split      "Show_Name.WEBRip"
	// separators "Show Name.WEBRip"
	// periods    "Show Name WEBRip"
	// rule       "Show Name "
	// collapse   "Show Name"
	// Show Name.mkv
}
