package ai

import (
	"context"
	"math/rand"

	"github.com/havenapp/haven-api/models"
)

// narrativePools holds the canned covert posts per language. Unknown
// languages fall back to English.
var narrativePools = map[string][]string{
	"en": {
		"Beautiful morning coffee ☕ Thinking about how some days feel longer than others. Sometimes I wish I could just breathe freely without walking on eggshells. Anyone else feel like they need a break from routine? #MorningThoughts #NeedingChange",
		"Watching the sunrise 🌅 Reflecting on patterns that keep repeating. It's amazing how some people can make you feel so small in your own home. Grateful for those who truly listen. #NewDay #Hope",
		"Lovely flowers today 🌸 But even beauty can't mask the tension at home. Days blend into weeks, weeks into months. If only walls could talk, they'd tell stories no one wants to hear. #StayStrong #OneDay",
		"Coffee date with myself ☕ Sometimes solitude is safer than company. Been dealing with increasing pressure lately. Remember: appearing happy doesn't mean you are. #SelfCare #Hidden",
	},
	"ta": {
		"அழகான காலை காபி ☕ சில நாட்கள் மற்றவற்றை விட நீளமாக உணரவைப்பது பற்றி யோசிக்கிறேன். சில சமயங்களில் முட்டை ஓடுகள் மீது நடப்பது போல் இல்லாமல் சுதந்திரமாக சுவாசிக்க விரும்புகிறேன். வழக்கமான வாழ்க்கையிலிருந்து ஒரு இடைவெளி தேவை என்று வேறு யாராவது உணர்கிறீர்களா? #காலைசிந்தனைகள் #மாற்றம்",
		"சூரிய உதயத்தைப் பார்ப்பது 🌅 மீண்டும் மீண்டும் வரும் முறைகளைப் பற்றி சிந்திக்கிறேன். கவனிக்கும் ஒரு சிலர் நம் சொந்த வீட்டிலேயே நம்மை எவ்வளவு சிறியதாக உணரச் செய்கிறார்கள் என்பது ஆச்சரியமாக இருக்கிறது. உண்மையிலேயே செவிசாய்ப்பவர்களுக்கு நன்றி. #புதியநாள் #நம்பிக்கை",
		"இன்று அழகான பூக்கள் 🌸 ஆனால் அழகு கூட வீட்டில் இருக்கும் பதற்றத்தை மறைக்க முடியாது. நாட்கள் வாரங்களாகின்றன, வாரங்கள் மாதங்களாகின்றன. சுவர்கள் பேச முடிந்தால், யாரும் கேட்க விரும்பாத கதைகளைச் சொல்லும். #வலிமையாகஇரு #ஒருநாள்",
	},
	"hi": {
		"सुबह की खूबसूरत कॉफी ☕ सोच रही हूं कि कुछ दिन दूसरे दिनों की तुलना में लंबे क्यों लगते हैं। कभी-कभी काश मैं बिना डरे खुलकर सांस ले पाती। क्या किसी और को भी लगता है किroutine से ब्रेक की जरूरत है? #MorningThoughts #NeedingChange",
		"सूर्योदय देख रही हूं 🌅 उन पैटर्नों पर विचार कर रही हूं जो दोहराते रहते हैं। यह आश्चर्यजनक है कि कैसे कुछ लोग आपको अपने ही घर में इतना छोटा महसूस करा सकते हैं। उन लोगों की आभारी हूं जो वास्तव में सुनते हैं। #NewDay #Hope",
		"आज प्यारे फूल हैं 🌸 लेकिन सुंदरता भी घर के तनाव को नहीं छिपा सकती। दिन हफ्तों में बदल जाते हैं, हफ्ते महीनों में। काश दीवारें बोल पातीं, तो वे ऐसी कहानियां सुनातीं जो कोई नहीं सुनना चाहता। #StayStrong #OneDay",
	},
}

// TemplateGenerator picks a covert post pseudo-randomly from the fixed
// per-language pools. It is the default deployment when no language
// model endpoint is reachable.
type TemplateGenerator struct {
	// pick selects an index in [0, n). Defaults to rand.Intn; tests
	// replace it for determinism.
	pick func(n int) int
}

// NewTemplateGenerator returns a template-backed Generator
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{pick: rand.Intn}
}

// Narrative returns one of the canned posts for the given language
func (g *TemplateGenerator) Narrative(_ context.Context, _ FormData, language string) string {
	pool, ok := narrativePools[language]
	if !ok {
		pool = narrativePools["en"]
	}
	return pool[g.pick(len(pool))]
}

// Classify derives the severity triple from the form
func (g *TemplateGenerator) Classify(narrative string, form FormData) models.Classification {
	return Classify(narrative, form)
}
