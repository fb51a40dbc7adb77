package rules

import "strconv"

// sentinelText is ordinary prose that a sensible rule set leaves untouched.
func sentinelText(n int) string {
	return "Das hier ist ein ziemlich langer ganz normaler Text, an dem die Rules nichts verändern sollten! " +
		"Dadurch fail'en auch Rules. und das ist auch gut so." + strconv.Itoa(n)
}

// sentinelRule deletes sentinelText(n).
func sentinelRule(n int) string {
	return "\n\n\"" + Escape(sentinelText(n)) + "\"gm->\"\"\n\n"
}

// SelfCheck tests whether a rule set leaves ordinary text alone.
//
// The rules are run between two rules that each delete one sentinel sentence,
// against a subject made of both sentences. The first sentinel is deleted
// before the user rules run; the second is only deleted if the user rules
// left it intact. ok is true when the final text is empty. The Result carries
// the log of all rules that fired.
func SelfCheck(rules string) (ok bool, res Result) {
	wrapped := sentinelRule(1) + rules + sentinelRule(2)
	res = Apply(sentinelText(1)+sentinelText(2), wrapped, Options{Log: true, Diagnostics: true})
	return res.Text == "", res
}
