package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMinChars applies to catalog entries that do not set their own
// minimum.
const DefaultMinChars = 50

// Catalog is the fixed, ordered list of survey questions. Order is
// significant: it defines both display order and the 1-based question
// number written into records. A catalog is immutable once constructed.
type Catalog struct {
	questions []QuestionDefinition
}

// NewCatalog builds a catalog from the given definitions, applying
// DefaultMinChars where a minimum is unset. The catalog must be non-empty.
func NewCatalog(questions []QuestionDefinition) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, NewInvalidError("catalog must contain at least one question")
	}
	qs := make([]QuestionDefinition, len(questions))
	copy(qs, questions)
	for i := range qs {
		if qs[i].Title == "" {
			return nil, NewInvalidError(fmt.Sprintf("question %d has no title", i+1))
		}
		if qs[i].MinChars == 0 {
			qs[i].MinChars = DefaultMinChars
		}
		if qs[i].MinChars < 0 {
			return nil, NewInvalidError(fmt.Sprintf("question %d has a negative minimum", i+1))
		}
	}
	return &Catalog{questions: qs}, nil
}

// LoadCatalog reads question definitions from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var qs []QuestionDefinition
	if err := yaml.Unmarshal(b, &qs); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(qs)
}

func (c *Catalog) Len() int { return len(c.questions) }

// Question returns the definition at the 0-based index.
func (c *Catalog) Question(index int) (QuestionDefinition, error) {
	if index < 0 || index >= len(c.questions) {
		return QuestionDefinition{}, NewIndexError(fmt.Sprintf("question index %d out of range [0,%d)", index, len(c.questions)))
	}
	return c.questions[index], nil
}

// Questions returns a copy of all definitions in display order.
func (c *Catalog) Questions() []QuestionDefinition {
	out := make([]QuestionDefinition, len(c.questions))
	copy(out, c.questions)
	return out
}

// DefaultCatalog is the built-in post-experiment questionnaire based on
// Stanislavski's seven questions, plus a closing in-character introduction.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]QuestionDefinition{
		{
			Title: "1. 私は誰か？",
			Note: "基本から始め，想像力で空白を埋めていきましょう．\n\n" +
				"性別，年齢，職業などのプロフィール，自認の性格，他者の評価，そのギャップ，過去の重要な出来事など",
		},
		{
			Title: "2. 私はどこにいるのか？",
			Note: "シーン中の行動を決定づける要素となりうる「場所」を決めていきましょう．\n\n" +
				"国，町，場所，屋内か屋外か，親しみや思い入れのある場所か慣れない場所か，見えているものなど",
		},
		{
			Title: "3. 時はいつ？",
			Note: "キャラクターの行動に影響を与える「時」を決めましょう．\n\n" +
				"年，季節，月，日，時間帯など",
			MinChars: 30,
		},
		{
			Title: "4. 何がしたいのか？",
			Note: "キャラクターがシーン内で行う全ての行動の根底にある「動機」を考えましょう．\n\n" +
				"全ての行動は，シーン内の他のキャラクターから自分が望むものを得るという目標に向かって実行されるべきです．" +
				"これはキャラクターの目的とも呼ばれます．",
		},
		{
			Title: "5. なぜそれを望むのか？",
			Note: "キャラクターに行動する説得力のある理由を与えましょう．\n\n" +
				"舞台やスクリーン上の目的には，必ず原動力となるものが必要であり，それがあなたの存在意義です．" +
				"私たちには行動する理由があり，キャラクターも例外ではありません．",
		},
		{
			Title: "6. どうすれば望むことを達成できるか？",
			Note: "目的を達成するための手段を考えましょう．\n\n" +
				"対話や動き，身振りを使って他のキャラクターに影響を与える事ができます．" +
				"これはキャラクターの戦術とも呼ばれます．" +
				"一つの戦術が失敗した時のために，もう一つ戦術があると良いです．",
		},
		{
			Title: "7. 何を克服しなければならないか？",
			Note: "目的を達成するにあたっての障壁を明らかにしましょう．\n\n" +
				"通常，他の人物の目的や物理的な障害などの外部要因と本人の内面での葛藤が常に存在します．",
		},
		{
			Title: "8. あなたの演じる役になりきって，400字以内で自己紹介を書いてください．",
			Note: "「私は優しい性格です」のような直接的な性格説明は避け、話し言葉のような語尾やエピソードで人柄を伝えてください。" +
				"「私の名前はヒナタ．」の後に続けてください。\n\n" +
				"例：俺の名前はレン．朝は目覚ましが鳴る前に起きて，カーテンを勢いよく開け...",
			MinChars: 200,
			Prefill:  "私の名前はヒナタ．",
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
