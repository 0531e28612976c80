package service

import (
	"fmt"

	"github.com/bagy391/budget-tracker/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(toEmail, fullName, resetLink string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 BUDGET_EMAIL_ENABLED=true")
	}

	subject := "【家庭记账】密码重置"
	body := s.resetEmailBody(fullName, resetLink)

	return s.sendEmail(toEmail, subject, body)
}

// SendFamilyInviteEmail 成员被加入家庭时的通知邮件。
// 邮件服务未启用时静默跳过，加成员操作不因此失败。
func (s *EmailService) SendFamilyInviteEmail(toEmail, familyName, inviterName string) error {
	if !s.cfg.Enabled {
		return nil
	}

	subject := fmt.Sprintf("【家庭记账】%s 邀请你加入 %s", inviterName, familyName)
	body := s.inviteEmailBody(familyName, inviterName)

	return s.sendEmail(toEmail, subject, body)
}

// resetEmailBody 生成重置邮件内容
func (s *EmailService) resetEmailBody(fullName, resetLink string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #6366f1, #a855f7); color: white; padding: 30px; text-align: center; }
        .content { padding: 40px 30px; color: #333; line-height: 1.8; }
        .btn { display: inline-block; background: #6366f1; color: white !important; text-decoration: none; padding: 14px 40px; border-radius: 8px; font-weight: 600; margin: 20px 0; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>💰 家庭记账</h1></div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>我们收到了您的密码重置请求。请点击下方按钮重置您的密码：</p>
            <p style="text-align: center;"><a href="%s" class="btn">重置密码</a></p>
            <div class="warning">
                <p>⚠️ 此链接有效期为 30 分钟，请尽快完成密码重置。</p>
                <p>⚠️ 如果您没有请求重置密码，请忽略此邮件。</p>
            </div>
        </div>
        <div class="footer">此邮件由系统自动发送，请勿直接回复。</div>
    </div>
</body>
</html>`, fullName, resetLink)
}

// inviteEmailBody 生成家庭邀请通知内容
func (s *EmailService) inviteEmailBody(familyName, inviterName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #10b981, #14b8a6); color: white; padding: 30px; text-align: center; }
        .content { padding: 40px 30px; color: #333; line-height: 1.8; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>👨‍👩‍👧‍👦 家庭记账</h1></div>
        <div class="content">
            <p>您好！</p>
            <p><strong>%s</strong> 已将您加入家庭 <strong>%s</strong>。</p>
            <p>登录后即可查看并记录该家庭的收支。</p>
        </div>
        <div class="footer">此邮件由系统自动发送，请勿直接回复。</div>
    </div>
</body>
</html>`, inviterName, familyName)
}

// sendEmail 通过 SMTP 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}
