package account

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/svc/auth"
)

type registerResponse struct {
	User    account.View `json:"user"`
	Session auth.Session `json:"session"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type methodRequest struct {
	Value string `json:"value"`
}

type verifyResponse struct {
	Message string `json:"message"`
	auth.Session
}

// sessionCookie renders resp and sets the session cookie.
type sessionCookie struct {
	core.Response
	sessions *session.Manager
	sess     auth.Session
}

func (c sessionCookie) Render(w http.ResponseWriter, r *http.Request) error {
	if err := c.sessions.Attach(w, c.sess.Token, time.Duration(c.sess.TTL)*time.Second); err != nil {
		return err
	}
	return c.Response.Render(w, r)
}

// clearedCookie renders resp and removes the session cookie.
type clearedCookie struct {
	core.Response
	sessions *session.Manager
}

func (c clearedCookie) Render(w http.ResponseWriter, r *http.Request) error {
	if err := c.sessions.Clear(w); err != nil {
		return err
	}
	return c.Response.Render(w, r)
}

func (m *Module) register(r *http.Request, in auth.RegisterInput) (core.Response, error) {
	acc, sess, err := m.svc.Register(r.Context(), in, clientip.FromRequest(r), r.UserAgent())
	if err != nil {
		return nil, err
	}
	return sessionCookie{
		Response: core.JSON(http.StatusCreated, registerResponse{User: acc.View(), Session: sess}),
		sessions: m.sessions,
		sess:     sess,
	}, nil
}

func (m *Module) login(r *http.Request, in loginRequest) (core.Response, error) {
	sess, err := m.svc.Login(r.Context(), in.Username, in.Password, clientip.FromRequest(r), r.UserAgent())
	if err != nil {
		return nil, err
	}
	return sessionCookie{
		Response: core.JSON(http.StatusOK, sess),
		sessions: m.sessions,
		sess:     sess,
	}, nil
}

func (m *Module) profile(r *http.Request, _ core.Empty) (core.Response, error) {
	acc := auth.MustAccountFromContext(r.Context())
	return core.JSON(http.StatusOK, acc.View()), nil
}

func (m *Module) deleteAccount(r *http.Request, _ core.Empty) (core.Response, error) {
	acc := auth.MustAccountFromContext(r.Context())
	if err := m.svc.Delete(r.Context(), acc.ID); err != nil {
		return nil, err
	}
	return clearedCookie{Response: core.Message(http.StatusOK, "success"), sessions: m.sessions}, nil
}

func (m *Module) logout(r *http.Request, _ core.Empty) (core.Response, error) {
	tok, _ := session.TokenFromContext(r.Context())
	if err := m.svc.Logout(r.Context(), tok); err != nil {
		return nil, err
	}
	return clearedCookie{Response: core.Message(http.StatusOK, "Successfully logged out"), sessions: m.sessions}, nil
}

func (m *Module) logoutAll(r *http.Request, _ core.Empty) (core.Response, error) {
	acc := auth.MustAccountFromContext(r.Context())
	if err := m.svc.LogoutAll(r.Context(), acc.ID); err != nil {
		return nil, err
	}
	return clearedCookie{Response: core.Message(http.StatusOK, "Successfully logged out"), sessions: m.sessions}, nil
}

func (m *Module) verify(r *http.Request, _ core.Empty) (core.Response, error) {
	acc := auth.MustAccountFromContext(r.Context())
	sess, err := m.svc.Verify(r.Context(), acc, r.URL.Query().Get("code"), clientip.FromRequest(r), r.UserAgent())
	if err != nil {
		return nil, err
	}
	return sessionCookie{
		Response: core.JSON(http.StatusOK, verifyResponse{Message: "User verified", Session: sess}),
		sessions: m.sessions,
		sess:     sess,
	}, nil
}

func (m *Module) updateMethod(r *http.Request, in methodRequest) (core.Response, error) {
	tag, ok := methodTag(r)
	if !ok {
		return nil, auth.ErrInvalidMethodTag
	}
	acc := auth.MustAccountFromContext(r.Context())
	if err := m.svc.UpdateAuthenticationMethod(r.Context(), acc, tag, in.Value); err != nil {
		return nil, err
	}
	return core.Message(http.StatusOK, "Successfully updated authentication method"), nil
}

func (m *Module) removeMethod(r *http.Request, _ core.Empty) (core.Response, error) {
	tag, ok := methodTag(r)
	if !ok {
		return nil, auth.ErrUnknownMethod
	}
	acc := auth.MustAccountFromContext(r.Context())
	if err := m.svc.RemoveAuthenticationMethod(r.Context(), acc, tag); err != nil {
		return nil, err
	}
	return core.Message(http.StatusOK, "Successfully removed authentication method"), nil
}

func methodTag(r *http.Request) (account.Tag, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, "method"), 10, 16)
	if err != nil {
		return 0, false
	}
	return account.Tag(n), true
}
