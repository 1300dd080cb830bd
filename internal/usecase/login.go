package usecase

import "context"

type LoginUseCase struct {
	Admin   AdminAuthenticator
	Tokens  TokenIssuer
	Metrics Recorder
}

func NewLoginUseCase(admin AdminAuthenticator, tokens TokenIssuer, metrics Recorder) *LoginUseCase {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &LoginUseCase{Admin: admin, Tokens: tokens, Metrics: metrics}
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	input, err := ValidateLoginInput(input)
	if err != nil {
		return nil, err
	}

	if err := uc.Admin.Authenticate(input.Email, input.Password); err != nil {
		uc.Metrics.LoginAttempt("rejected")
		return nil, &DomainError{Code: CodeInvalidCredentials, Message: "Credenciales inválidas"}
	}

	token, expiresAt, err := uc.Tokens.Issue(input.Email)
	if err != nil {
		return nil, newServerError(CodeTokenIssue, err)
	}
	uc.Metrics.LoginAttempt("success")

	return &LoginOutput{Token: token, ExpiresAt: expiresAt}, nil
}
