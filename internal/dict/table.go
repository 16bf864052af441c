package dict

import (
	"sync"

	"romatype/internal/keystroke"
)

// builtinTable is the default romaji mapping. Within one unit the order is
// significant: when two spellings have equal length the earlier one is the
// ideal choice.
var builtinTable = map[string][]string{
	// plain rows
	"あ": {"a"},
	"い": {"i", "yi"},
	"う": {"u", "wu", "whu"},
	"え": {"e"},
	"お": {"o"},
	"か": {"ka", "ca"},
	"き": {"ki"},
	"く": {"ku", "cu", "qu"},
	"け": {"ke"},
	"こ": {"ko", "co"},
	"さ": {"sa"},
	"し": {"si", "ci", "shi"},
	"す": {"su"},
	"せ": {"se", "ce"},
	"そ": {"so"},
	"た": {"ta"},
	"ち": {"ti", "chi"},
	"つ": {"tu", "tsu"},
	"て": {"te"},
	"と": {"to"},
	"な": {"na"},
	"に": {"ni"},
	"ぬ": {"nu"},
	"ね": {"ne"},
	"の": {"no"},
	"は": {"ha"},
	"ひ": {"hi"},
	"ふ": {"fu", "hu"},
	"へ": {"he"},
	"ほ": {"ho"},
	"ま": {"ma"},
	"み": {"mi"},
	"む": {"mu"},
	"め": {"me"},
	"も": {"mo"},
	"や": {"ya"},
	"ゆ": {"yu"},
	"よ": {"yo"},
	"ら": {"ra"},
	"り": {"ri"},
	"る": {"ru"},
	"れ": {"re"},
	"ろ": {"ro"},
	"わ": {"wa"},
	"を": {"wo"},
	"ん": {"n", "nn", "xn"},

	// voiced and semi-voiced rows
	"が": {"ga"},
	"ぎ": {"gi"},
	"ぐ": {"gu"},
	"げ": {"ge"},
	"ご": {"go"},
	"ざ": {"za"},
	"じ": {"zi", "ji"},
	"ず": {"zu"},
	"ぜ": {"ze"},
	"ぞ": {"zo"},
	"だ": {"da"},
	"ぢ": {"di"},
	"づ": {"du"},
	"で": {"de"},
	"ど": {"do"},
	"ば": {"ba"},
	"び": {"bi"},
	"ぶ": {"bu"},
	"べ": {"be"},
	"ぼ": {"bo"},
	"ぱ": {"pa"},
	"ぴ": {"pi"},
	"ぷ": {"pu"},
	"ぺ": {"pe"},
	"ぽ": {"po"},
	"ゔ": {"vu"},

	// small kana
	"ぁ": {"la", "xa"},
	"ぃ": {"li", "xi"},
	"ぅ": {"lu", "xu"},
	"ぇ": {"le", "xe"},
	"ぉ": {"lo", "xo"},
	"ゃ": {"lya", "xya"},
	"ゅ": {"lyu", "xyu"},
	"ょ": {"lyo", "xyo"},
	"ゎ": {"lwa", "xwa"},
	"っ": {"ltu", "xtu", "ltsu"},

	// contracted sounds
	"きゃ": {"kya"},
	"きゅ": {"kyu"},
	"きょ": {"kyo"},
	"ぎゃ": {"gya"},
	"ぎゅ": {"gyu"},
	"ぎょ": {"gyo"},
	"しゃ": {"sya", "sha"},
	"しゅ": {"syu", "shu"},
	"しょ": {"syo", "sho"},
	"じゃ": {"ja", "zya", "jya"},
	"じゅ": {"ju", "zyu", "jyu"},
	"じょ": {"jo", "zyo", "jyo"},
	"ちゃ": {"tya", "cha"},
	"ちゅ": {"tyu", "chu"},
	"ちょ": {"tyo", "cho"},
	"ぢゃ": {"dya"},
	"ぢゅ": {"dyu"},
	"ぢょ": {"dyo"},
	"にゃ": {"nya"},
	"にゅ": {"nyu"},
	"にょ": {"nyo"},
	"ひゃ": {"hya"},
	"ひゅ": {"hyu"},
	"ひょ": {"hyo"},
	"びゃ": {"bya"},
	"びゅ": {"byu"},
	"びょ": {"byo"},
	"ぴゃ": {"pya"},
	"ぴゅ": {"pyu"},
	"ぴょ": {"pyo"},
	"みゃ": {"mya"},
	"みゅ": {"myu"},
	"みょ": {"myo"},
	"りゃ": {"rya"},
	"りゅ": {"ryu"},
	"りょ": {"ryo"},

	// foreign-sound clusters
	"いぇ": {"ye"},
	"うぃ": {"wi"},
	"うぇ": {"we"},
	"うぉ": {"who"},
	"しぇ": {"sye", "she"},
	"じぇ": {"je", "zye"},
	"ちぇ": {"tye", "che"},
	"つぁ": {"tsa"},
	"つぃ": {"tsi"},
	"つぇ": {"tse"},
	"つぉ": {"tso"},
	"てぃ": {"thi"},
	"てゅ": {"thu"},
	"でぃ": {"dhi"},
	"でゅ": {"dhu"},
	"とぅ": {"twu"},
	"どぅ": {"dwu"},
	"ふぁ": {"fa"},
	"ふぃ": {"fi"},
	"ふぇ": {"fe"},
	"ふぉ": {"fo"},
	"ふゅ": {"fyu"},
	"ゔぁ": {"va"},
	"ゔぃ": {"vi"},
	"ゔぇ": {"ve"},
	"ゔぉ": {"vo"},

	// symbols
	"ー": {"-"},
	"、": {","},
	"。": {"."},
	"・": {"/"},
	"「": {"["},
	"」": {"]"},
	"〜": {"~"},
	"！": {"!"},
	"？": {"?"},
	"：": {":"},
	"；": {";"},
	"＠": {"@"},
	"＃": {"#"},
	"＄": {"$"},
	"％": {"%"},
	"＆": {"&"},
	"（": {"("},
	"）": {")"},
	"＊": {"*"},
	"＋": {"+"},
	"／": {"/"},
	"＜": {"<"},
	"＝": {"="},
	"＞": {">"},
	"＾": {"^"},
	"＿": {"_"},
	"｀": {"`"},
	"｛": {"{"},
	"｜": {"|"},
	"｝": {"}"},
	"￥": {"\\"},
	"’": {"'"},
	"”": {"\""},
	"　": {" "},
}

var (
	builtinOnce sync.Once
	builtin     *Dictionary
)

// Builtin returns the built-in romaji dictionary. The same instance is
// returned on every call.
func Builtin() *Dictionary {
	builtinOnce.Do(func() {
		entries := make(map[string][]keystroke.Sequence, len(builtinTable))
		for unit, spellings := range builtinTable {
			seqs := make([]keystroke.Sequence, len(spellings))
			for i, raw := range spellings {
				seqs[i] = keystroke.MustSequence(raw)
			}
			entries[unit] = seqs
		}
		builtin = &Dictionary{entries: entries}
	})
	return builtin
}
