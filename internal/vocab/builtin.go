package vocab

var builtin = []Word{
	{Word: "abundant", Definition: "existing in large quantities; more than enough", Example: "The region has abundant rainfall."},
	{Word: "benevolent", Definition: "well meaning and kindly", Example: "A benevolent smile crossed her face."},
	{Word: "candid", Definition: "truthful and straightforward; frank", Example: "He gave a candid account of the events."},
	{Word: "diligent", Definition: "having or showing care and conscientiousness in one's work", Example: "She is a diligent student."},
	{Word: "eloquent", Definition: "fluent or persuasive in speaking or writing", Example: "He made an eloquent speech."},
	{Word: "frugal", Definition: "sparing or economical with regard to money or food", Example: "They lived a frugal life."},
	{Word: "gregarious", Definition: "fond of company; sociable", Example: "She was a gregarious child."},
	{Word: "hinder", Definition: "to create difficulties resulting in delay or obstruction", Example: "Bad weather hindered the search."},
	{Word: "inevitable", Definition: "certain to happen; unavoidable", Example: "Change is inevitable."},
	{Word: "jeopardize", Definition: "to put someone or something into a situation of danger or loss", Example: "Poor planning jeopardized the project."},
	{Word: "keen", Definition: "having or showing eagerness or enthusiasm", Example: "He is keen to learn."},
	{Word: "lucid", Definition: "expressed clearly; easy to understand", Example: "The instructions were lucid."},
	{Word: "meticulous", Definition: "showing great attention to detail; very careful and precise", Example: "He kept meticulous records."},
	{Word: "novice", Definition: "a person new to or inexperienced in a field or situation", Example: "The course is for novices."},
	{Word: "obsolete", Definition: "no longer produced or used; out of date", Example: "The machine is now obsolete."},
	{Word: "pragmatic", Definition: "dealing with things sensibly and realistically", Example: "We need a pragmatic approach."},
	{Word: "quarrel", Definition: "an angry argument or disagreement", Example: "They had a quarrel about money."},
	{Word: "resilient", Definition: "able to recover quickly from difficult conditions", Example: "Children are often very resilient."},
	{Word: "scrutinize", Definition: "to examine or inspect closely and thoroughly", Example: "Customs officers scrutinized his passport."},
	{Word: "tedious", Definition: "too long, slow, or dull; tiresome", Example: "The journey was tedious."},
	{Word: "ubiquitous", Definition: "present, appearing, or found everywhere", Example: "Smartphones are ubiquitous."},
	{Word: "vivid", Definition: "producing powerful feelings or strong, clear images in the mind", Example: "She has vivid memories of her childhood."},
	{Word: "wary", Definition: "feeling or showing caution about possible dangers or problems", Example: "Be wary of strangers."},
	{Word: "yearn", Definition: "to have an intense feeling of longing for something", Example: "She yearned for home."},
	{Word: "zealous", Definition: "having or showing great energy or enthusiasm", Example: "He was a zealous supporter of the team."},
}

// Builtin returns a copy of the pool used when nothing was imported.
func Builtin() []Word {
	out := make([]Word, len(builtin))
	copy(out, builtin)
	return out
}
