package application

// CredentialResolver は、送信に使用するAPIキーを決定します。
// ホストのシークレットに登録されたキーは起動時に一度だけ読み込まれ、以降変更されません。
type CredentialResolver struct {
	hostSecret string
}

// NewCredentialResolver は新しいCredentialResolverインスタンスを作成します
func NewCredentialResolver(hostSecret string) *CredentialResolver {
	return &CredentialResolver{hostSecret: hostSecret}
}

// HasHostSecret は、ホストのシークレットにAPIキーが登録されているかを返します
func (r *CredentialResolver) HasHostSecret() bool {
	return r.hostSecret != ""
}

// Resolve は、ホストのシークレットがあればそれを、なければ入力されたキーを返します
func (r *CredentialResolver) Resolve(input string) string {
	if r.hostSecret != "" {
		return r.hostSecret
	}
	return input
}
