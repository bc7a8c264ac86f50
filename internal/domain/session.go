package domain

import "fmt"

// State は、1回の送信サイクルにおける画面の状態です
type State int

const (
	StateIdle State = iota
	StateCalling
	StateDisplaying
	StateErrorShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCalling:
		return "Calling"
	case StateDisplaying:
		return "Displaying"
	case StateErrorShown:
		return "ErrorShown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session は、1つの画面（ブラウザセッションまたはDiscordの1コマンド）の状態機械です。
// エラーは同時に1つだけ保持し、成功すると消去されます。
type Session struct {
	Config   Configuration
	Topic    string
	state    State
	err      *EssayError
	fragment string
}

// NewSession は、Idle状態の新しいSessionを作成します
func NewSession(config Configuration, topic string) *Session {
	return &Session{
		Config: config,
		Topic:  topic,
		state:  StateIdle,
	}
}

// State は、現在の状態を返します
func (s *Session) State() State {
	return s.state
}

// Error は、表示中のエラーを返します。エラーがない場合はnilです
func (s *Session) Error() *EssayError {
	return s.err
}

// Fragment は、表示中のエッセイカードを返します
func (s *Session) Fragment() string {
	return s.fragment
}

// Submit は、送信ボタンが押されたときの事前チェックを行います。
// APIキー、トピックの順に検証し、失敗した場合はErrorShownに遷移してエラーを返します。
func (s *Session) Submit() error {
	if s.state == StateCalling {
		return fmt.Errorf("%w: %s -> Calling", ErrInvalidTransition, s.state)
	}

	if s.Config.Credential == "" {
		s.showError(newPreflightError(ErrMissingCredential, ErrorKindMissingCredential, MissingCredentialMessage))
		return s.err
	}

	if s.Topic == "" {
		s.showError(newPreflightError(ErrMissingTopic, ErrorKindMissingTopic, MissingTopicMessage))
		return s.err
	}

	s.state = StateCalling
	return nil
}

// Succeed は、生成に成功したカード断片を表示します
func (s *Session) Succeed(fragment string) error {
	if s.state != StateCalling {
		return fmt.Errorf("%w: %s -> Displaying", ErrInvalidTransition, s.state)
	}

	s.state = StateDisplaying
	s.fragment = fragment
	s.err = nil
	return nil
}

// Fail は、生成APIの失敗を分類して表示します
func (s *Session) Fail(err error) error {
	if s.state != StateCalling {
		return fmt.Errorf("%w: %s -> ErrorShown", ErrInvalidTransition, s.state)
	}

	s.showError(ClassifyGenerationError(err))
	return nil
}

// Reset は、新しい操作が行われたときにIdleへ戻します
func (s *Session) Reset() {
	s.state = StateIdle
}

func (s *Session) showError(err *EssayError) {
	s.state = StateErrorShown
	s.err = err
	s.fragment = ""
}
